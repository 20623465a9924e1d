package repository

import (
	"database/sql"
	"errors"
	"testing"
)

type fakeRows struct {
	data    [][]interface{}
	idx     int
	err     error
	scanErr error
	closed  bool
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...interface{}) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.data[r.idx-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *sql.NullString:
			if row[i] == nil {
				*p = sql.NullString{}
			} else {
				*p = sql.NullString{String: row[i].(string), Valid: true}
			}
		case *[]string:
			if row[i] != nil {
				*p = row[i].([]string)
			}
		default:
			return errors.New("unexpected scan destination")
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }

func (r *fakeRows) Close() { r.closed = true }

func TestScanProfiles(t *testing.T) {
	rows := &fakeRows{data: [][]interface{}{
		{"u1", "ana", "Ana", "INFJ", []string{"poetry", "philosophy"}},
		{"u2", "bo", "Bo", nil, nil},
	}}

	profiles, err := scanProfiles(rows)
	if err != nil {
		t.Fatalf("scan profiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].Type != "INFJ" || len(profiles[0].SelectedInterests) != 2 {
		t.Fatalf("unexpected first profile: %+v", profiles[0])
	}
	if profiles[1].Type != "" || profiles[1].SelectedInterests != nil {
		t.Fatalf("expected null type and interests for second profile: %+v", profiles[1])
	}
}

func TestScanProfilesPropagatesErrors(t *testing.T) {
	scanErr := errors.New("bad column")
	if _, err := scanProfiles(&fakeRows{data: [][]interface{}{{"u1"}}, scanErr: scanErr}); !errors.Is(err, scanErr) {
		t.Fatalf("expected scan error, got %v", err)
	}

	iterErr := errors.New("conn reset")
	if _, err := scanProfiles(&fakeRows{err: iterErr}); !errors.Is(err, iterErr) {
		t.Fatalf("expected iteration error, got %v", err)
	}
}
