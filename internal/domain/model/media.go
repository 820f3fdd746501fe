package model

// VoiceMessage describes one ingested voice message. OriginalPath is the
// compressed upload as received from Telegram; DerivedPath is the 16 kHz
// WAV produced after the sender was acknowledged, empty if transcoding
// did not complete.
type VoiceMessage struct {
	Sender       string
	FileID       string
	OriginalPath string
	DerivedPath  string
}

// Photo describes one ingested photo. Path is set only when the photo was
// accepted; a rejected photo leaves no file behind.
type Photo struct {
	Sender   string
	FileID   string
	Path     string
	HasFaces bool
}

// FaceRegion is one detected face. Row/Col is the region center, Scale its
// size in pixels.
type FaceRegion struct {
	Row     int
	Col     int
	Scale   int
	Quality float32
}
