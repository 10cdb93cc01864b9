package prompts

type PromptName string

const (
	PromptBasicAnalysis PromptName = "idea_basic_analysis"
	PromptDeepAnalysis  PromptName = "idea_deep_analysis"
)
