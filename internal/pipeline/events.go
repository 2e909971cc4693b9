package pipeline

// EventType discriminates the events emitted over one conversation stream.
type EventType string

const (
	EventProgress    EventType = "progress"
	EventTranscript  EventType = "transcript"
	EventAnalysis    EventType = "analysis"
	EventTranslation EventType = "translation"
	EventComplete    EventType = "complete"
	EventError       EventType = "error"
)

// Stage names reported in progress events, in pipeline order.
const (
	StageReceiving    = "receiving"
	StageTranscribing = "transcribing"
	StageAnalyzing    = "analyzing"
	StageTranslating  = "translating"
	StageSynthesizing = "synthesizing"
	StageComplete     = "complete"
)

// stageProgress maps each stage to its reported completion percentage.
var stageProgress = map[string]int{
	StageReceiving:    10,
	StageTranscribing: 25,
	StageAnalyzing:    45,
	StageTranslating:  65,
	StageSynthesizing: 85,
	StageComplete:     100,
}

// Event is one server-sent event in a conversation stream. Data is the
// JSON-marshalable payload for the event type.
type Event struct {
	Type EventType
	Data any
}

// ProgressPayload announces entry into a pipeline stage.
type ProgressPayload struct {
	Step     string `json:"step"`
	Message  string `json:"message"`
	Progress int    `json:"progress"`
}

// TranscriptPayload carries the recognized learner utterance.
type TranscriptPayload struct {
	Transcript string `json:"transcript"`
}

// AnalysisPayload carries the tutor's feedback, minus the native response
// which follows in the translation event.
type AnalysisPayload struct {
	Reaction      string `json:"reaction"`
	Correction    string `json:"correction"`
	Encouragement string `json:"encouragement"`
	CulturalNote  string `json:"cultural_note"`
}

// TranslationPayload pairs the tutor's native-language reply with its
// English rendering.
type TranslationPayload struct {
	Native  string `json:"native"`
	English string `json:"english"`
}

// CompletePayload is the terminal aggregate of a successful conversation.
type CompletePayload struct {
	Transcript      string `json:"transcript"`
	Reaction        string `json:"reaction"`
	Correction      string `json:"correction"`
	Encouragement   string `json:"encouragement"`
	CulturalNote    string `json:"cultural_note"`
	ResponseNative  string `json:"response_native"`
	ResponseEnglish string `json:"response_english"`
	AudioBase64     string `json:"audio_base64"`
	TutorName       string `json:"tutor_name"`
	TutorRegion     string `json:"tutor_region"`
	Language        string `json:"language"`
	Dialect         string `json:"dialect"`
}

// ErrorPayload is the terminal event of a failed conversation.
type ErrorPayload struct {
	Message string `json:"message"`
}
