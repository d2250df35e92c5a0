package bus

// Lifecycle event types published by the game.
const (
	EntityCreated     = "entity.created"
	EntityDestroyed   = "entity.destroyed"
	StateChanged      = "state.changed"
	LevelStarted      = "level.started"
	WaveCompleted     = "wave.completed"
	FadeCompleted     = "fade.completed"
	CampaignCompleted = "campaign.completed"
)

// EntityPayload is carried by EntityCreated and EntityDestroyed.
type EntityPayload struct {
	Entity     uint64   `json:"entity"`
	Components []string `json:"components"`
}

// StatePayload is carried by StateChanged.
type StatePayload struct {
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	Transition string `json:"transition"`
	Depth      int    `json:"depth"`
}

// LevelPayload is carried by LevelStarted and WaveCompleted.
type LevelPayload struct {
	Name      string `json:"name"`
	Enemies   int    `json:"enemies"`
	Remaining int    `json:"remaining"`
}
