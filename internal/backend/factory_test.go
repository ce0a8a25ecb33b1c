package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"finboard/internal/amqp"
	"finboard/internal/config"
	"finboard/internal/ledger"
	applog "finboard/internal/log"
)

func testFactory() *DefaultFactory {
	f := NewFactory(applog.New(applog.Config{Output: io.Discard})).(*DefaultFactory)
	f.dial = func(string, string, string) (*amqp.Client, error) {
		return nil, errors.New("dial tcp: connection refused")
	}
	return f
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}

	cfg := &config.Config{DataBackend: "sqlite", SQLiteDBName: "ledger", AMQPExchange: "x", AMQPRoutingKey: "k"}
	got, err := FromAppConfig(cfg)
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if got.Type != SQLiteBackend || got.SQLiteDBName != "ledger" || got.AMQPExchange != "x" || got.AMQPRoutingKey != "k" {
		t.Errorf("FromAppConfig = %+v", got)
	}

	if _, err := FromAppConfig(&config.Config{DataBackend: "postgres"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBName: "db"}, false},
		{"sqlite without name", Config{Type: SQLiteBackend}, true},
		{"amqp without exchange", Config{Type: MemoryBackend, AMQPURL: "amqp://localhost"}, true},
		{"unknown", Config{Type: "files"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetBackendTypeStrings(t *testing.T) {
	got := GetBackendTypeStrings()
	if len(got) != 2 || got[0] != "memory" || got[1] != "sqlite" {
		t.Errorf("GetBackendTypeStrings = %v", got)
	}
}

func exerciseStore(t *testing.T, store ledger.Store) {
	t.Helper()
	l := ledger.New(store, ledger.WithLocation(time.UTC))
	// A fresh store starts empty.
	txs, err := l.ListTransactions(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("fresh store has %d transactions", len(txs))
	}
}

func TestCreateBackend(t *testing.T) {
	f := testFactory()
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: MemoryBackend})
		if err != nil {
			t.Fatalf("CreateBackend: %v", err)
		}
		exerciseStore(t, res.Store)
		if err := res.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		name := fmt.Sprintf("backend_%d", time.Now().UnixNano())
		res, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBName: name})
		if err != nil {
			t.Fatalf("CreateBackend: %v", err)
		}
		defer res.Close()
		exerciseStore(t, res.Store)
	})

	t.Run("unreachable broker", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: MemoryBackend, AMQPURL: "amqp://127.0.0.1:1/", AMQPExchange: "x"})
		if err != nil {
			t.Fatalf("CreateBackend: %v", err)
		}
		if res.Publisher != nil {
			t.Error("publisher should be nil when the broker is unreachable")
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := f.CreateBackend(ctx, Config{Type: "postgres"}); err == nil {
			t.Error("expected error")
		}
	})
}
