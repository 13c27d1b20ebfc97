package redis

import "github.com/redis/rueidis"

// NewStoreForTest wraps an existing rueidis client, typically a
// rueidis mock, so store behavior can be tested without a server.
func NewStoreForTest(c rueidis.Client) *Store {
	return &Store{client: c}
}
