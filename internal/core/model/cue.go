package model

// Cue names a sound played by the sound collaborator.
type Cue string

const (
	// CueClick acknowledges a start/stop interaction.
	CueClick Cue = "click"
	// CueFinish marks interval completion.
	CueFinish Cue = "finish"
)
