package models

// WebhookSet holds webhooks keyed by identity. Adding a webhook equal to one
// already present replaces it and keeps its original position.
type WebhookSet struct {
	index map[string]int
	items []*Webhook
}

func NewWebhookSet(hooks ...*Webhook) *WebhookSet {
	s := &WebhookSet{index: make(map[string]int, len(hooks))}
	for _, h := range hooks {
		s.Add(h)
	}
	return s
}

// Add reports whether the webhook was not already present.
func (s *WebhookSet) Add(w *Webhook) bool {
	if w == nil {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[w.Key()]; ok {
		s.items[i] = w
		return false
	}
	s.index[w.Key()] = len(s.items)
	s.items = append(s.items, w)
	return true
}

func (s *WebhookSet) Has(w *Webhook) bool {
	if w == nil {
		return false
	}
	_, ok := s.index[w.Key()]
	return ok
}

func (s *WebhookSet) Remove(w *Webhook) bool {
	if w == nil {
		return false
	}
	i, ok := s.index[w.Key()]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, w.Key())
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].Key()] = j
	}
	return true
}

func (s *WebhookSet) Len() int {
	return len(s.items)
}

// Slice returns the members in insertion order.
func (s *WebhookSet) Slice() []*Webhook {
	out := make([]*Webhook, len(s.items))
	copy(out, s.items)
	return out
}
