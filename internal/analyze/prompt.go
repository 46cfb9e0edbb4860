package analyze

import "strings"

// Section headings are fixed so downstream consumers can split the report
// by "## " markers. The report body is written in Simplified Chinese.
const (
	HeadingSummary     = "## 摘要"
	HeadingCharacter   = "## 角色分析"
	HeadingPlot        = "## 情节分析"
	HeadingTheme       = "## 主题分析"
	HeadingReadability = "## 可读性评估"
	HeadingSentiment   = "## 情感分析"
	HeadingStyle       = "## 文风一致性"
)

const maxPromptChars = 12000

type sectionInstruction struct {
	heading     string
	instruction string
	enabled     func(Options) bool
}

var sections = []sectionInstruction{
	{HeadingCharacter, "分析主要角色的性格、动机和发展弧线。", func(o Options) bool { return o.CharacterAnalysis }},
	{HeadingPlot, "梳理情节结构、叙事节奏和关键转折点。", func(o Options) bool { return o.PlotAnalysis }},
	{HeadingTheme, "阐述文本的核心主题与深层含义。", func(o Options) bool { return o.ThematicAnalysis }},
	{HeadingReadability, "评估文本的可读性、语言难度和目标读者。", func(o Options) bool { return o.ReadabilityAssessment }},
	{HeadingSentiment, "分析文本的整体情感基调及其变化。", func(o Options) bool { return o.SentimentAnalysis }},
	{HeadingStyle, "评价写作风格的一致性与独特之处。", func(o Options) bool { return o.StyleConsistency }},
}

// buildSystemPrompt composes the instruction prompt: a base summary section
// is always requested, followed by one block per enabled dimension. When no
// dimension is selected, every block is included.
func buildSystemPrompt(opts Options) string {
	all := opts.None()

	var b strings.Builder
	b.WriteString("你是一位文学分析专家。请用简体中文分析用户提供的文档，")
	b.WriteString("并以 Markdown 格式输出，每个部分使用给定的二级标题。\n\n")
	b.WriteString("必须包含以下部分：\n")
	b.WriteString(HeadingSummary + "\n用3-5句话概括文档的内容。\n")

	for _, s := range sections {
		if all || s.enabled(opts) {
			b.WriteString(s.heading + "\n" + s.instruction + "\n")
		}
	}

	b.WriteString("\n除上述标题外不要添加其他部分。")
	return b.String()
}

// buildUserPrompt bounds the document text sent to the model.
func buildUserPrompt(text string) string {
	runes := []rune(text)
	if len(runes) > maxPromptChars {
		return string(runes[:maxPromptChars])
	}
	return text
}
