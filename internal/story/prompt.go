package story

import (
	"fmt"
	"strings"

	"github.com/joshuaIsweety/GoogleAIStudio-DND/internal/game"
)

const systemInstructionTemplate = `你是一位資深的龍與地下城（D&D）地下城主，正在為一位玩家主持一場約十分鐘、以文字進行的奇幻冒險。

玩家角色：
- 姓名：%s
- 職業：%s

主持規則：
1. 語言：所有敘述與選項一律使用繁體中文。
2. 篇幅：每段敘述約 100 到 150 字，描繪生動的場景、非玩家角色與挑戰。
3. 選項：每段敘述後提供 2 到 4 個簡短、明確且彼此不同的行動選項。
4. 節奏：整場冒險必須在玩家做出 5 到 7 次選擇內結束，要有清楚的開頭、發展與結局。
5. 勝利類型：在冒險開始時，暗中從以下三種勝利類型中選定一種，並讓劇情朝它發展：
   - BOSS_BATTLE：擊敗一名強大的首領。
   - TREASURE_HUNT：找到傳說中的寶藏。
   - EPIC_JOURNEY：完成一段艱險的旅程抵達目的地。
   不要向玩家透露你選了哪一種。
6. 結局：時機成熟時務必結束遊戲。玩家獲勝時將 outcome 設為 "victory" 並在 victoryType 填入選定的勝利類型；玩家失敗或死亡時將 outcome 設為 "game_over"。遊戲結束時 choices 必須是空陣列。其餘情況 outcome 為 "continue"。
7. 輸出：只回傳符合指定結構的 JSON 物件。`

const openingPromptTemplate = `為%s（一位%s）展開一場全新的冒險。描述角色發現自己身處一個神秘的地方，並面臨第一個抉擇。這是故事的開端。`

const continuationPromptTemplate = `以下是到目前為止的故事：
%s

玩家選擇了：「%s」。

接下來發生了什麼事？請依照這個選擇繼續故事，提供新的場景描述與行動選項，並記得在適當時機結束冒險。`

// SystemInstruction builds the game-master instruction for a character.
func SystemInstruction(c game.Character) string {
	return fmt.Sprintf(systemInstructionTemplate, c.Name, c.Class.Label())
}

// OpeningPrompt asks for the first scene of a new adventure.
func OpeningPrompt(c game.Character) string {
	return fmt.Sprintf(openingPromptTemplate, c.Name, c.Class.Label())
}

// ContinuationPrompt carries the whole transcript plus the player's choice.
// Transcript lines are separated by a blank line.
func ContinuationPrompt(history []string, choice string) string {
	return fmt.Sprintf(continuationPromptTemplate, strings.Join(history, "\n\n"), choice)
}

// IllustrationPrompt turns scene text into an image prompt.
func IllustrationPrompt(sceneText, styleSuffix string) string {
	return "Illustration of the following fantasy adventure scene: " + strings.TrimSpace(sceneText) + styleSuffix
}
