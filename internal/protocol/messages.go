package protocol

// ClientMsg is any client -> server message. Key carries a
// KeyboardEvent.key value, Control a touch control id.
type ClientMsg struct {
	Type    string `json:"type"`
	Key     string `json:"key,omitempty"`
	Control string `json:"control,omitempty"`
}

// WELCOME (server -> client), sent once after the upgrade.
type WelcomeMsg struct {
	Type            string            `json:"type"`
	ProtocolVersion string            `json:"protocol_version"`
	SessionID       string            `json:"session_id"`
	Mode            string            `json:"mode"`
	Cols            int               `json:"cols"`
	Rows            int               `json:"rows"`
	TickRate        int               `json:"tick_rate"`
	Palette         map[string]string `json:"palette"`
}

// StatsMsg mirrors the scoreboard. Both readout surfaces are written from it.
type StatsMsg struct {
	Score int `json:"score"`
	Level int `json:"level"`
	Lines int `json:"lines"`
}

type OverlayMsg struct {
	Visible bool   `json:"visible"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Button  string `json:"button"`
}

// PieceMsg is a piece kind plus absolute (or preview-relative) cells.
type PieceMsg struct {
	Kind  string   `json:"kind"`
	Cells [][2]int `json:"cells"`
}

// STATE (server -> client), sent whenever the revision changes.
type StateMsg struct {
	Type      string     `json:"type"`
	Revision  uint64     `json:"revision"`
	Tick      uint64     `json:"tick"`
	Phase     string     `json:"phase"`
	Overlay   OverlayMsg `json:"overlay"`
	Stats     StatsMsg   `json:"stats"`
	Board     []string   `json:"board"`
	Piece     *PieceMsg  `json:"piece"`
	Ghost     [][2]int   `json:"ghost"`
	Next      *PieceMsg  `json:"next"`
	Banner    string     `json:"banner"`
	ElapsedMS int64      `json:"elapsed_ms"`
}

type PongMsg struct {
	Type string `json:"type"`
}

type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
