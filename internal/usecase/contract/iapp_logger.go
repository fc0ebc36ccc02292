package usecasecontract

// IAppLogger defines the logging methods used across usecases.
type IAppLogger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// ILikeMetrics records like toggle outcomes and ledger latency.
type ILikeMetrics interface {
	IncToggle(action, outcome string)
	ObserveLedgerCall(operation string, seconds float64)
}
