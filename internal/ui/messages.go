package ui

const (
	MsgAudioSaved     = "Аудиозапись успешно сохранена в базе данных!"
	MsgPhotoSaved     = "Фото с лицами успешно сохранено!"
	MsgPhotoRejected  = "На фото лица не обнаружены. Фото не было сохранено."
	MsgNoAudio        = "Нет сохраненных аудиозаписей."
	MsgNoPhotos       = "Нет сохраненных фотографий."
	MsgUnknownCommand = "Неизвестная команда. Используйте /start"
)

func StartMessage() string {
	return "Привет! Я бот, который сохраняет аудиосообщения и фотографии. " +
		"Отправьте мне голосовое или фото. " +
		"Фото будет сохранено, только если на нем обнаружены лица. " +
		"Аудиосообщения будут сохранятся всегда. " +
		"Чтобы получить сохраненные фото или аудио, " +
		"используйте команды /get_audio или /get_photo."
}
