package cli

import (
	"reflect"
	"testing"
)

func TestParseExpandFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   []string
		want    map[string][]string
		wantErr bool
	}{
		{
			name:  "empty",
			flags: nil,
			want:  nil,
		},
		{
			name:  "single",
			flags: []string{"obj-1:head"},
			want:  map[string][]string{"obj-1": {"head"}},
		},
		{
			name:  "multiple properties on one node",
			flags: []string{"obj-1:head", "obj-1:tail"},
			want:  map[string][]string{"obj-1": {"head", "tail"}},
		},
		{
			name:  "multiple nodes",
			flags: []string{"obj-1:head", "obj-2:value"},
			want:  map[string][]string{"obj-1": {"head"}, "obj-2": {"value"}},
		},
		{
			name:    "missing separator",
			flags:   []string{"obj-1"},
			wantErr: true,
		},
		{
			name:    "empty node",
			flags:   []string{":head"},
			wantErr: true,
		},
		{
			name:    "empty property",
			flags:   []string{"obj-1:"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseExpandFlags(tt.flags)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseExpandFlags(%v) error = %v, wantErr %v", tt.flags, err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseExpandFlags(%v) = %v, want %v", tt.flags, got, tt.want)
			}
		})
	}
}
