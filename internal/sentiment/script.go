package sentiment

// Script is the scoring pathway an article is routed to.
type Script int

const (
	ScriptForeign Script = iota
	ScriptChinese
)

func (s Script) String() string {
	switch s {
	case ScriptChinese:
		return "chinese"
	case ScriptForeign:
		return "foreign"
	default:
		return "unknown"
	}
}

// DetectScript routes text containing any CJK unified ideograph to the
// Chinese pathway.
func DetectScript(text string) Script {
	for _, r := range text {
		if r >= 0x4e00 && r <= 0x9fff {
			return ScriptChinese
		}
	}
	return ScriptForeign
}
