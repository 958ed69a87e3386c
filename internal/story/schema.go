package story

import (
	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/game"
)

const (
	storyFieldDescription       = "用繁體中文描述目前的場景與發生的事，會直接顯示給玩家。奇幻、引人入勝，約 100 到 150 字。"
	choicesFieldDescription     = "2 到 4 個簡短清楚的行動選項。遊戲結束時為空陣列。"
	outcomeFieldDescription     = "遊戲狀態：continue（繼續）、victory（玩家獲勝）或 game_over（玩家失敗或死亡）。"
	victoryTypeFieldDescription = "僅在 outcome 為 victory 時提供：開局時暗中選定的勝利類型。"
)

func outcomeValues() []string {
	out := make([]string, 0, len(game.Outcomes))
	for _, o := range game.Outcomes {
		out = append(out, string(o))
	}
	return out
}

func victoryTypeValues() []string {
	out := make([]string, 0, len(game.VictoryTypes))
	for _, v := range game.VictoryTypes {
		out = append(out, string(v))
	}
	return out
}

// geminiResponseSchema is the structured-output schema for the Gemini backend.
func geminiResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"story": {
				Type:        genai.TypeString,
				Description: storyFieldDescription,
			},
			"choices": {
				Type:        genai.TypeArray,
				Description: choicesFieldDescription,
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"outcome": {
				Type:        genai.TypeString,
				Description: outcomeFieldDescription,
				Format:      "enum",
				Enum:        outcomeValues(),
			},
			"victoryType": {
				Type:        genai.TypeString,
				Description: victoryTypeFieldDescription,
				Format:      "enum",
				Enum:        victoryTypeValues(),
			},
		},
		Required: []string{"story", "choices", "outcome"},
	}
}

// openAIResponseSchema is the same contract as a JSON schema for the
// OpenAI-compatible backend.
func openAIResponseSchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"story": {
				Type:        jsonschema.String,
				Description: storyFieldDescription,
			},
			"choices": {
				Type:        jsonschema.Array,
				Description: choicesFieldDescription,
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			},
			"outcome": {
				Type:        jsonschema.String,
				Description: outcomeFieldDescription,
				Enum:        outcomeValues(),
			},
			"victoryType": {
				Type:        jsonschema.String,
				Description: victoryTypeFieldDescription,
				Enum:        victoryTypeValues(),
			},
		},
		Required: []string{"story", "choices", "outcome"},
	}
}
