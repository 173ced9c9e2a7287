// internal/app/system/txn/txn.go
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a MongoDB session/transaction so that
// multi-document mutations (squad cascades, save pairs, comment
// backlinks) commit or roll back as a unit.
//
// Standalone servers don't support transactions. When the server
// reports that (IsNotSupported), fn is re-run directly without a
// transaction and a warning is logged; the write ordering inside fn is
// arranged so a partial failure leaves the least harmful state.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	client := db.Client()

	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logFallback(log, err)
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logFallback(log, err)
		return fn(ctx)
	}
	return err
}

func logFallback(log *zap.Logger, err error) {
	if log != nil {
		log.Warn("transactions unavailable, running without transaction", zap.Error(err))
	}
}

// Transaction-unsupported server error codes:
// 20  IllegalOperation (standalone), 51 and 263 variants seen on
// standalone/older servers.
var notSupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// IsNotSupported reports whether err indicates the server cannot run
// transactions (standalone deployment, old version). Matches by command
// error code first, then by keyword pairs for drivers/servers that wrap
// the message.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) && notSupportedCodes[ce.Code] {
		return true
	}

	msg := strings.ToLower(err.Error())
	has := func(s string) bool { return strings.Contains(msg, s) }

	switch {
	case has("transaction") && has("replica set"):
		return true
	case has("session") && has("not supported"):
		return true
	case has("transaction") && has("session"):
		return true
	case has("illegal operation"):
		return true
	}
	return false
}
