/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package store keeps the favourites and votes created against the fake API.
package store

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/unikorn-cloud/catapi/pkg/catapi"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// Store is safe for concurrent use.
type Store struct {
	lock       sync.Mutex
	userID     string
	nextID     int
	favourites []catapi.Favourite
	votes      []catapi.Vote
	now        func() time.Time
}

func New(userID string) *Store {
	return &Store{
		userID: userID,
		nextID: 1,
		now:    time.Now,
	}
}

func (s *Store) allocate() int {
	id := s.nextID
	s.nextID++

	return id
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

func subID(id string) *string {
	if id == "" {
		return nil
	}

	return &id
}

func matchesSubID(have *string, want string) bool {
	return want == "" || (have != nil && *have == want)
}

// AddFavourite records a favourite, an image may only be favourited once
// per sub ID.
func (s *Store) AddFavourite(image catapi.ImageSummary, sub string) (*catapi.Favourite, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	duplicate := slices.ContainsFunc(s.favourites, func(f catapi.Favourite) bool {
		return f.ImageID == image.ID && ((f.SubID == nil && sub == "") || (f.SubID != nil && *f.SubID == sub))
	})

	if duplicate {
		return nil, ErrDuplicate
	}

	favourite := catapi.Favourite{
		ID:        s.allocate(),
		UserID:    s.userID,
		ImageID:   image.ID,
		SubID:     subID(sub),
		CreatedAt: s.timestamp(),
		Image:     image,
	}

	s.favourites = append(s.favourites, favourite)

	return &favourite, nil
}

// Favourites lists favourites, optionally restricted to a sub ID.
func (s *Store) Favourites(sub string) []catapi.Favourite {
	s.lock.Lock()
	defer s.lock.Unlock()

	result := []catapi.Favourite{}

	for _, f := range s.favourites {
		if matchesSubID(f.SubID, sub) {
			result = append(result, f)
		}
	}

	return result
}

func (s *Store) Favourite(id int) (*catapi.Favourite, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	i := slices.IndexFunc(s.favourites, func(f catapi.Favourite) bool { return f.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}

	favourite := s.favourites[i]

	return &favourite, nil
}

func (s *Store) DeleteFavourite(id int) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	i := slices.IndexFunc(s.favourites, func(f catapi.Favourite) bool { return f.ID == id })
	if i < 0 {
		return ErrNotFound
	}

	s.favourites = slices.Delete(s.favourites, i, i+1)

	return nil
}

// AddVote records a vote, votes aren't unique.
func (s *Store) AddVote(image catapi.ImageSummary, sub string, value int) *catapi.Vote {
	s.lock.Lock()
	defer s.lock.Unlock()

	vote := catapi.Vote{
		ID:        s.allocate(),
		ImageID:   image.ID,
		SubID:     subID(sub),
		Value:     value,
		CreatedAt: s.timestamp(),
		Image:     image,
	}

	s.votes = append(s.votes, vote)

	return &vote
}

func (s *Store) Votes(sub string) []catapi.Vote {
	s.lock.Lock()
	defer s.lock.Unlock()

	result := []catapi.Vote{}

	for _, v := range s.votes {
		if matchesSubID(v.SubID, sub) {
			result = append(result, v)
		}
	}

	return result
}

func (s *Store) Vote(id int) (*catapi.Vote, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	i := slices.IndexFunc(s.votes, func(v catapi.Vote) bool { return v.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}

	vote := s.votes[i]

	return &vote, nil
}

func (s *Store) DeleteVote(id int) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	i := slices.IndexFunc(s.votes, func(v catapi.Vote) bool { return v.ID == id })
	if i < 0 {
		return ErrNotFound
	}

	s.votes = slices.Delete(s.votes, i, i+1)

	return nil
}
