package observability

const (
	MetricPrefix = "guildbot"
)

// Metric names
const (
	CommandsDispatchedTotal = MetricPrefix + ".commands.dispatched_total"
	CommandErrorsTotal      = MetricPrefix + ".commands.errors_total"

	XPAwardedTotal = MetricPrefix + ".leveling.xp_awarded_total"
	LevelUpsTotal  = MetricPrefix + ".leveling.level_ups_total"

	ActiveGames  = MetricPrefix + ".games.active"
	ActiveVoice  = MetricPrefix + ".music.voice_sessions"
	TracksPlayed = MetricPrefix + ".music.tracks_played_total"

	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"

	BalanceTransactionsTotal = MetricPrefix + ".balance.transactions_total"

	DatabaseQueriesTotal  = MetricPrefix + ".database.queries_total"
	DatabaseQueryDuration = MetricPrefix + ".database.query_duration"
)

// Label keys
const (
	LabelType       = "type"
	LabelEventType  = "event_type"
	LabelCommand    = "command"
	LabelRepository = "repository"
	LabelMethod     = "method"
)

// Game types
const (
	GameTicTacToe = "tictactoe"
	GameHangman   = "hangman"
	GameTrivia    = "trivia"
	GameRPS       = "rps"
	GameHeist     = "heist"
)
