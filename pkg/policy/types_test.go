package policy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "single", value: One("*"), want: `"*"`},
		{name: "list", value: List("s3:GetObject", "s3:PutObject"), want: `["s3:GetObject","s3:PutObject"]`},
		{name: "one element list", value: List("*"), want: `["*"]`},
		{name: "empty list", value: List(), want: `[]`},
		{name: "zero value", value: Value{}, want: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var stmt Statement
	err := json.Unmarshal([]byte(`{"Effect":"Allow","Action":"sqs:*","Resource":["a","b"]}`), &stmt)
	require.NoError(t, err)

	assert.True(t, stmt.Action.IsSingle())
	assert.Equal(t, []string{"sqs:*"}, stmt.Action.Strings())
	assert.False(t, stmt.Resource.IsSingle())
	assert.Equal(t, []string{"a", "b"}, stmt.Resource.Strings())

	var bad Value
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`{"a":"b"}`), &bad))
}

func TestStatement_OmitsEmptyCondition(t *testing.T) {
	data, err := json.Marshal(Statement{Effect: EffectAllow, Action: List("a:b"), Resource: One("*")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Effect":"Allow","Action":["a:b"],"Resource":"*"}`, string(data))
}

func TestOption(t *testing.T) {
	calls := 0
	build := func() []Statement {
		calls++
		return []Statement{{Effect: EffectAllow}}
	}

	absent := When(false, build)
	assert.False(t, absent.present)
	assert.Nil(t, absent.Statements())
	assert.Equal(t, 0, calls)

	present := When(true, build)
	assert.True(t, present.present)
	assert.Len(t, present.Statements(), 1)
	assert.Equal(t, 1, calls)

	assert.True(t, Some().present)
	assert.Nil(t, None().Statements())
}
