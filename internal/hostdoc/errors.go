package hostdoc

import "errors"

var (
	// ErrNameInUse indicates an element of the same kind already has the name.
	ErrNameInUse = errors.New("hostdoc: name already in use")
	// ErrNotFound indicates an unknown element id.
	ErrNotFound = errors.New("hostdoc: element not found")
	// ErrNoTransaction indicates a mutation outside an open transaction.
	ErrNoTransaction = errors.New("hostdoc: no open transaction")
	// ErrTransactionActive indicates an operation that needs no open transaction.
	ErrTransactionActive = errors.New("hostdoc: transaction already open")
	// ErrTransactionDone indicates a transaction that was already committed or rolled back.
	ErrTransactionDone = errors.New("hostdoc: transaction finished")
	// ErrEditScopeActive indicates a second edit scope on the same document.
	ErrEditScopeActive = errors.New("hostdoc: edit scope already active")
	// ErrEditScopeClosed indicates use of a finished or unstarted edit scope.
	ErrEditScopeClosed = errors.New("hostdoc: edit scope not active")
	// ErrReadOnly indicates a write to an asset outside its edit scope.
	ErrReadOnly = errors.New("hostdoc: asset is read-only")
	// ErrInvalidValue indicates a value the property does not accept.
	ErrInvalidValue = errors.New("hostdoc: invalid property value")
	// ErrWrongKind indicates a typed access to a property of another kind.
	ErrWrongKind = errors.New("hostdoc: wrong property kind")
)
