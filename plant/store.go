// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package plant

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

//Store is the in-memory registry of the datasets held by the service.
//All the operations are safe for concurrent use and none of them holds the
//lock beyond the registry bookkeeping itself
type Store struct {
	mu       sync.RWMutex
	order    []string
	datasets map[string]*Dataset
}

//NewStore returns an empty dataset store
func NewStore() *Store {
	return &Store{datasets: map[string]*Dataset{}}
}

//Register assigns a unique id to the given dataset and makes it visible to
//the readers of the store. The id carries a prefix denoting the dataset source
//and a short random token that is regenerated until it is free
func (s *Store) Register(d *Dataset) string {
	/*
	 * We will resolve the id prefix and the token width from the dataset source
	 * Then we will generate tokens until a free id is found
	 * Then we will record the dataset against the id
	 */
	prefix, width := "upload-", 8
	if d.source == SourceExample {
		prefix, width = "example-", 4
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := prefix + idToken(width)
	for {
		if _, taken := s.datasets[id]; !taken {
			break
		}
		id = prefix + idToken(width)
	}

	d.id = id
	d.createdAt = time.Now().UTC()
	s.datasets[id] = d
	s.order = append(s.order, id)
	return id
}

//idToken returns a random hex token of the given width
func idToken(width int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:width]
}

//Get returns the dataset held against the given id
func (s *Store) Get(id string) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.datasets[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return d, nil
}

//List returns the summaries of the held datasets in their registration order
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Summary, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.datasets[id].Summary())
	}
	return result
}

//Delete removes the dataset held against the given id
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(s.datasets, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

//Len returns the number of datasets held in the store
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}
