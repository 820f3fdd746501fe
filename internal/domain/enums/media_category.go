package enums

// MediaCategory names a media storage directory. The string value is the
// directory name itself, so the on-disk layout cannot drift from the enum.
type MediaCategory string

const (
	CategoryAudioOGG MediaCategory = "audio_ogg"
	CategoryAudioWAV MediaCategory = "audio_wav"
	CategoryPhoto    MediaCategory = "photo"
)

func (c MediaCategory) Dir() string {
	return string(c)
}
