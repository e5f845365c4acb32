package fun

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"guildbot/domain/games"
)

type factResponse struct {
	Text string `json:"text"`
}

// Meme is a post returned by the meme API
type Meme struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	PostLink  string `json:"postLink"`
	Subreddit string `json:"subreddit"`
	Ups       int    `json:"ups"`
	NSFW      bool   `json:"nsfw"`
}

func (f *Feature) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// FetchJoke returns a joke from the API, or a built-in joke when the API fails.
// fromAPI is false when the fallback was used.
func (f *Feature) FetchJoke(ctx context.Context) (joke games.Joke, fromAPI bool) {
	if err := f.getJSON(ctx, f.urls.Joke, &joke); err == nil && joke.Setup != "" {
		return joke, true
	}
	return games.RandomJoke(f.rng), false
}

// FetchFact returns a fact from the API, or a built-in fact when the API fails
func (f *Feature) FetchFact(ctx context.Context) (fact string, fromAPI bool) {
	var resp factResponse
	if err := f.getJSON(ctx, f.urls.Fact, &resp); err == nil && resp.Text != "" {
		return resp.Text, true
	}
	return games.RandomFact(f.rng), false
}

// FetchMeme returns a meme. There is no offline fallback for images.
func (f *Feature) FetchMeme(ctx context.Context) (*Meme, error) {
	var meme Meme
	if err := f.getJSON(ctx, f.urls.Meme, &meme); err != nil {
		return nil, err
	}
	if meme.URL == "" {
		return nil, fmt.Errorf("meme response had no image")
	}
	return &meme, nil
}
