package html

import "github.com/microcosm-cc/bluemonday"

// Field content comes straight from user input. Plain fields are stripped of
// any markup; long-form fields keep the basic formatting the editor emits
// (paragraphs, lists, emphasis) and lose everything else.
var (
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

func plain(s string) string {
	return strictPolicy.Sanitize(s)
}

func richText(s string) string {
	return ugcPolicy.Sanitize(s)
}

func plainList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, plain(s))
	}
	return out
}
