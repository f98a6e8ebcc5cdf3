package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAge(t *testing.T) {
	dob := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)
	person := Person{DoB: &dob}

	age := person.DeriveAge()
	require.NotNil(t, age)
	assert.GreaterOrEqual(t, *age, 25)
	assert.Less(t, *age, 130)
}

func TestDeriveAgeNilForSentinelAndMissingDoB(t *testing.T) {
	assert.Nil(t, (&Person{}).DeriveAge())

	sentinel := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, (&Person{DoB: &sentinel}).DeriveAge())
}
