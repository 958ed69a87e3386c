package chronicle

import (
	"context"
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

// Supabase inserts adventures into a Supabase (PostgREST) table.
type Supabase struct {
	client *supa.Client
	table  string
}

// NewSupabase connects to the project at url with the given API key.
func NewSupabase(url, key, table string) (*Supabase, error) {
	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Supabase: %w", err)
	}
	return &Supabase{client: client, table: table}, nil
}

// Record inserts one row. The PostgREST client has no context support, so
// ctx is only checked before the request is sent.
func (s *Supabase) Record(ctx context.Context, a Adventure) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var inserted []Adventure
	if _, err := s.client.From(s.table).Insert(a, false, "", "", "").ExecuteTo(&inserted); err != nil {
		return fmt.Errorf("insert into %s: %w", s.table, err)
	}
	return nil
}
