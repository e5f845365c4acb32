package fun

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"guildbot/domain/games"
	"guildbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeature(t *testing.T, handler http.HandlerFunc, rng *testhelpers.ScriptedRandom) *Feature {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewFeature(rng, Endpoints{
		Joke: server.URL + "/joke",
		Fact: server.URL + "/fact",
		Meme: server.URL + "/meme",
	})
}

func TestFetchJoke_FromAPI(t *testing.T) {
	f := newTestFeature(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/joke", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":1,"type":"general","setup":"Knock knock","punchline":"Who's there?"}`))
	}, &testhelpers.ScriptedRandom{})

	joke, fromAPI := f.FetchJoke(context.Background())
	assert.True(t, fromAPI)
	assert.Equal(t, games.Joke{Setup: "Knock knock", Punchline: "Who's there?"}, joke)
}

func TestFetchJoke_FallsBackOnError(t *testing.T) {
	f := newTestFeature(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, &testhelpers.ScriptedRandom{Ns: []int{2}})

	joke, fromAPI := f.FetchJoke(context.Background())
	assert.False(t, fromAPI)
	assert.Equal(t, games.FallbackJokes[2], joke)
}

func TestFetchFact(t *testing.T) {
	f := newTestFeature(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"x","text":"Sloths can hold their breath longer than dolphins."}`))
	}, &testhelpers.ScriptedRandom{})

	fact, fromAPI := f.FetchFact(context.Background())
	assert.True(t, fromAPI)
	assert.Equal(t, "Sloths can hold their breath longer than dolphins.", fact)
}

func TestFetchFact_FallsBackOnBadJSON(t *testing.T) {
	f := newTestFeature(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}, &testhelpers.ScriptedRandom{Ns: []int{0}})

	fact, fromAPI := f.FetchFact(context.Background())
	assert.False(t, fromAPI)
	assert.Equal(t, games.FallbackFacts[0], fact)
}

func TestFetchMeme(t *testing.T) {
	f := newTestFeature(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title":"cat","url":"https://i.example/cat.png","subreddit":"memes","ups":42}`))
	}, &testhelpers.ScriptedRandom{})

	meme, err := f.FetchMeme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://i.example/cat.png", meme.URL)
	assert.Equal(t, 42, meme.Ups)
}

func TestFetchMeme_NoImage(t *testing.T) {
	f := newTestFeature(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title":"cat"}`))
	}, &testhelpers.ScriptedRandom{})

	_, err := f.FetchMeme(context.Background())
	assert.Error(t, err)
}

func TestBuildRollEmbed(t *testing.T) {
	embed := buildRollEmbed(&games.DiceRoll{Rolls: []int64{3, 5}, Total: 8})
	assert.Equal(t, "3, 5", embed.Fields[0].Value)
	assert.Equal(t, "8", embed.Fields[1].Value)
}

func TestBuildPollEmbed(t *testing.T) {
	embed := buildPollEmbed("Lunch?", []string{"pizza", "sushi"}, "alice")
	assert.Equal(t, "1️⃣ pizza\n2️⃣ sushi", embed.Fields[1].Value)
	assert.Equal(t, "Poll by alice", embed.Footer.Text)
}
