package extraction

// Stage is the furthest point a request reached in the pipeline.
type Stage string

const (
	StageReceived      Stage = "received"
	StageTextExtracted Stage = "text_extracted"
	StageStructured    Stage = "structured"
	StagePersisted     Stage = "persisted"
	StageDone          Stage = "done"
)
