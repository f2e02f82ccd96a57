package api

import (
	"sync"

	"github.com/google/uuid"
)

type animationRecord struct {
	Response AnimationResponse
	Data     []byte
}

// AnimationStore keeps assembled animations in memory by id.
type AnimationStore struct {
	mu         sync.Mutex
	animations map[string]*animationRecord
}

func NewAnimationStore() *AnimationStore {
	return &AnimationStore{
		animations: make(map[string]*animationRecord),
	}
}

// Save assigns an id to resp and stores it with its data.
func (s *AnimationStore) Save(resp AnimationResponse, data []byte) AnimationResponse {
	resp.ID = newAnimationID()
	s.mu.Lock()
	s.animations[resp.ID] = &animationRecord{Response: resp, Data: data}
	s.mu.Unlock()
	return resp
}

func (s *AnimationStore) Get(id string) (*animationRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.animations[id]
	return rec, ok
}

func (s *AnimationStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.animations[id]; !ok {
		return false
	}
	delete(s.animations, id)
	return true
}

func (s *AnimationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.animations)
}

func newAnimationID() string {
	return "anim_" + uuid.NewString()
}
