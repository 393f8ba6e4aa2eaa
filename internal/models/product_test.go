package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCheckScopeWrite(t *testing.T) {
	branchA := uuid.New()
	branchB := uuid.New()

	cases := []struct {
		name     string
		actor    *uuid.UUID
		record   *uuid.UUID
		writable bool
	}{
		{"owner writes general", nil, nil, true},
		{"owner writes local", nil, &branchA, false},
		{"branch writes general", &branchA, nil, false},
		{"branch writes own local", &branchA, &branchA, true},
		{"branch writes other local", &branchA, &branchB, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckScopeWrite(tc.actor, tc.record)
			if tc.writable {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
