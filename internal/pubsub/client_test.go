package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	MatchID string `msgpack:"matchId"`
	Players int    `msgpack:"players"`
}

func TestEncodeDecode(t *testing.T) {
	data, err := Encode(event{MatchID: "m1", Players: 4})
	require.NoError(t, err)

	var got event
	require.NoError(t, NewNoop().ProcessMessage(data, &got))
	assert.Equal(t, event{MatchID: "m1", Players: 4}, got)

	assert.Error(t, Decode([]byte{0xc1}, &got))
}

func TestMockRecordsTopics(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.SendMessage(EventMatchRecorded, event{MatchID: "a"}))
	require.NoError(t, m.SendMessage(EventMatchRolledBack, event{MatchID: "a"}))
	assert.Equal(t, []string{"match-recorded", "match-rolled-back"}, m.Topics())

	m.Reset()
	assert.Empty(t, m.Topics())
}
