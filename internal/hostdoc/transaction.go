package hostdoc

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// TransactionStatus is the outcome of a transaction.
type TransactionStatus string

const (
	TransactionStarted    TransactionStatus = "started"
	TransactionCommitted  TransactionStatus = "committed"
	TransactionRolledBack TransactionStatus = "rolled_back"
)

// Transaction groups document changes. Rollback restores the document to the
// state it had when the transaction started.
type Transaction struct {
	doc      *Document
	name     string
	snapshot docState
	status   TransactionStatus
}

// Begin opens a named transaction. Only one may be open at a time.
func (d *Document) Begin(name string) (*Transaction, error) {
	if d.tx != nil {
		return nil, fmt.Errorf("%w: %q while %q is open", ErrTransactionActive, name, d.tx.name)
	}
	tx := &Transaction{doc: d, name: name, status: TransactionStarted}
	if err := deepcopy.Copy(&tx.snapshot, &d.st); err != nil {
		return nil, fmt.Errorf("hostdoc: snapshot for %q: %w", name, err)
	}
	d.tx = tx
	return tx, nil
}

// Name returns the transaction name.
func (t *Transaction) Name() string { return t.name }

// Status returns the transaction status.
func (t *Transaction) Status() TransactionStatus { return t.status }

// Commit keeps the changes.
func (t *Transaction) Commit() (TransactionStatus, error) {
	if t.status != TransactionStarted {
		return t.status, fmt.Errorf("%w: commit %q", ErrTransactionDone, t.name)
	}
	if t.doc.scope != nil && t.doc.scope.active {
		return t.status, fmt.Errorf("%w: commit %q with an open edit scope", ErrEditScopeActive, t.name)
	}
	t.status = TransactionCommitted
	t.snapshot = docState{}
	t.doc.tx = nil
	return t.status, nil
}

// Rollback discards the changes. Rolling back a finished transaction is a no-op,
// so it can be deferred unconditionally.
func (t *Transaction) Rollback() TransactionStatus {
	if t.status != TransactionStarted {
		return t.status
	}
	if t.doc.scope != nil {
		t.doc.scope.discard()
	}
	t.doc.st = t.snapshot
	t.status = TransactionRolledBack
	t.doc.tx = nil
	return t.status
}
