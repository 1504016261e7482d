package port

// Session is the narrow capability surface onto one client's key/value
// bag. The persistence mechanism behind it is out of scope.
type Session interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Has(key string) bool
	Pop(key string) (any, bool)
}
