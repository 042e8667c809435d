package redisx

const (
	// Cache del resumen diario: stats:daily:{YYYY-MM-DD} -> JSON de DailyStatsDTO
	keyDailyStats = "stats:daily:%s"
)
