package play

import "expvar"

var (
	metricRollsStarted  = expvar.NewInt("rolls_started_total")
	metricRollsResolved = expvar.NewInt("rolls_resolved_total")
	metricRollsFailed   = expvar.NewInt("rolls_failed_total")
	metricRollsIgnored  = expvar.NewInt("rolls_ignored_total")

	metricEncryptedSubmissions = expvar.NewInt("submissions_encrypted_total")
	metricStandardSubmissions  = expvar.NewInt("submissions_standard_total")
	metricEncryptionDowngrades = expvar.NewInt("encryption_downgrades_total")

	metricConnectTotal    = expvar.NewInt("wallet_connect_total")
	metricConnectErrors   = expvar.NewInt("wallet_connect_errors_total")
	metricRefreshFailures = expvar.NewInt("refresh_failures_total")
)
