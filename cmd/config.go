package cmd

// Config carries the environment-driven settings of the service.
// TelegramBotToken may be empty; the service then records notifications
// instead of sending them.
type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	TelegramBotToken string
	DispatchSchedule string
	DispatchPacingMs string
}
