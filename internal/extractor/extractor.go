package extractor

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/driftguard/driftguard/internal/errors"
	"github.com/driftguard/driftguard/pkg/types"
)

// planLineRe matches the complete, anchored resource action lines of the
// textual plan rendering, e.g.
//
//	# aws_instance.web will be created
//	# module.db.aws_db_instance.main must be replaced
//	# aws_instance.cache is tainted, so must be replaced
//
// Anchoring on the full line shape avoids misclassifying resources whose
// names or descriptions contain action words.
var planLineRe = regexp.MustCompile(
	`^\s*# (\S+) (?:is tainted, so |has been deleted, so )?` +
		`(will be created|will be updated in-place|will be destroyed|must be replaced|will be replaced)(?:,.*)?$`)

var verbToAction = map[string]types.Action{
	"will be created":          types.ActionCreate,
	"will be updated in-place": types.ActionUpdate,
	"will be destroyed":        types.ActionDestroy,
	"must be replaced":         types.ActionReplace,
	"will be replaced":         types.ActionReplace,
}

// Extract parses a plan into a normalized, ordered change list. The
// structured rendering is preferred when present; the textual rendering is
// the fallback. changesExpected is the verdict of the tool's own exit
// status and is cross-checked against what the parser found: silent
// under-reporting of drift is treated as worse than a loud failure.
func Extract(structured, textual []byte, changesExpected bool) ([]types.ResourceChange, error) {
	var changes []types.ResourceChange

	if len(structured) > 0 {
		parsed, err := parsePlanDocument(structured)
		if err != nil {
			return nil, errors.New(errors.ErrorTypeExternalTool, errors.StageExtract,
				"structured plan rendering is not valid JSON").WithCause(err)
		}
		changes = parsed
	} else {
		parsed, err := parsePlanText(textual)
		if err != nil {
			// an aborted scan may have dropped changes after the failure
			// point, so a partial result must never be returned
			return nil, errors.New(errors.ErrorTypeParseInconsistency, errors.StageExtract,
				"the textual plan rendering could not be fully scanned").
				WithCause(err).
				WithSolutions(
					"inspect the persisted plan artifact for unusually long lines",
					"prefer the structured plan rendering for this configuration",
				)
		}
		changes = parsed
	}

	if changesExpected && len(changes) == 0 {
		return nil, errors.New(errors.ErrorTypeParseInconsistency, errors.StageExtract,
			"the provisioning tool reported changes but none could be extracted from the plan output").
			WithSolutions(
				"inspect the persisted plan artifact for an unrecognized rendering",
				"upgrade driftguard if the tool's plan format changed",
			)
	}
	if !changesExpected && len(changes) > 0 {
		return nil, errors.New(errors.ErrorTypeParseInconsistency, errors.StageExtract,
			"the provisioning tool reported a clean plan but the plan output contains changes")
	}

	return changes, nil
}

// parsePlanText extracts changes from the line-oriented textual rendering.
// Attribute values (inline policies, user_data) can produce very long lines,
// so the scanner carries a generous buffer; if it still fails the whole parse
// fails, since changes after the failure point would be lost.
func parsePlanText(raw []byte) ([]types.ResourceChange, error) {
	var changes []types.ResourceChange

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		m := planLineRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		address := m[1]
		action, ok := verbToAction[m[2]]
		if !ok {
			continue
		}
		changes = append(changes, types.ResourceChange{
			Address:      address,
			ResourceType: typeFromAddress(address),
			Name:         nameFromAddress(address),
			Action:       action,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return changes, nil
}

// typeFromAddress derives the resource type from a plan address such as
// "aws_instance.web", "module.vpc.aws_subnet.private[0]" or
// "aws_instance.web[\"a\"]".
func typeFromAddress(address string) string {
	segs := addressSegments(address)
	if len(segs) < 2 {
		return "unknown"
	}
	return segs[len(segs)-2]
}

// nameFromAddress derives the resource name, with any index stripped
func nameFromAddress(address string) string {
	segs := addressSegments(address)
	if len(segs) == 0 {
		return ""
	}
	name := segs[len(segs)-1]
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

// addressSegments splits an address on dots outside index brackets and
// drops module path segments and trailing count indexes.
func addressSegments(address string) []string {
	var segs []string
	var current strings.Builder
	depth := 0
	for _, r := range address {
		switch {
		case r == '[':
			depth++
			current.WriteRune(r)
		case r == ']':
			depth--
			current.WriteRune(r)
		case r == '.' && depth == 0:
			segs = append(segs, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		segs = append(segs, current.String())
	}

	// drop "module.<name>" pairs
	for len(segs) > 2 && segs[0] == "module" {
		segs = segs[2:]
	}
	// drop a trailing numeric count segment ("aws_instance.web.0")
	if len(segs) > 2 {
		if _, err := strconv.Atoi(segs[len(segs)-1]); err == nil {
			segs = segs[:len(segs)-1]
		}
	}
	return segs
}
