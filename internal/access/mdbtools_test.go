package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMDBToolsStrategy_Available(t *testing.T) {
	tests := []struct {
		name    string
		missing map[string]bool
		want    bool
	}{
		{name: "both tools on path", missing: map[string]bool{}, want: true},
		{name: "mdb-tables missing", missing: map[string]bool{"mdb-tables": true}, want: false},
		{name: "mdb-export missing", missing: map[string]bool{"mdb-export": true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMDBToolsStrategy()
			s.lookPath = func(name string) (string, error) {
				if tt.missing[name] {
					return "", errors.New("not found")
				}
				return "/usr/bin/" + name, nil
			}
			assert.Equal(t, tt.want, s.Available())
		})
	}
}
