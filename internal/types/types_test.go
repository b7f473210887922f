package types_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/localnerve/bakery-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntAcceptsNumbersAndStrings(t *testing.T) {
	cases := map[string]int{
		`5`:    5,
		`"3"`:  3,
		`" 4 "`: 4,
		`""`:   0,
		`null`: 0,
	}
	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			var v struct {
				Rating types.FlexInt `json:"rating"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"rating":`+input+`}`), &v))
			assert.Equal(t, want, v.Rating.Int())
		})
	}
}

func TestFlexIntRejectsGarbage(t *testing.T) {
	var f types.FlexInt
	assert.Error(t, json.Unmarshal([]byte(`"five"`), &f))
	assert.Error(t, json.Unmarshal([]byte(`4.5`), &f))
	assert.Error(t, json.Unmarshal([]byte(`true`), &f))
}

func TestFlexIntMarshalsAsNumber(t *testing.T) {
	out, err := json.Marshal(types.FlexInt(4))
	require.NoError(t, err)
	assert.Equal(t, "4", string(out))
}

func TestOneOrMany(t *testing.T) {
	var single types.OneOrMany[map[string]any]
	require.NoError(t, json.Unmarshal([]byte(`{"type":"pageview"}`), &single))
	assert.Len(t, single.Items(), 1)

	var many types.OneOrMany[map[string]any]
	require.NoError(t, json.Unmarshal([]byte(` [{"type":"a"},{"type":"b"}]`), &many))
	assert.Len(t, many.Items(), 2)

	var none types.OneOrMany[map[string]any]
	require.NoError(t, json.Unmarshal([]byte(`null`), &none))
	assert.Empty(t, none.Items())
}

func TestUnavailableWrapsBothErrors(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := types.Unavailable("load products", cause)
	assert.True(t, errors.Is(err, types.ErrUnavailable))
	assert.True(t, errors.Is(err, cause))
}
