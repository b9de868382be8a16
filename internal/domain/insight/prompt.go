package insight

import (
	"encoding/json"
	"fmt"
)

const systemPrompt = "You are a senior web performance consultant. Write clear, plain-language reports that a non-technical site owner can act on. Use short paragraphs and bullet points; never use tables."

const fallbackAnalysis = "Could not generate analysis."

// userPrompt restates the three required report sections and embeds the
// summary as pretty-printed JSON.
func userPrompt(summary Summary) string {
	pretty, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		pretty = []byte("{}")
	}
	return fmt.Sprintf(`Analyze this PageSpeed audit summary and write a report with exactly these three sections:

1. Overall Performance
2. Key Issues
3. Recommendations

Audit summary:
%s`, pretty)
}
