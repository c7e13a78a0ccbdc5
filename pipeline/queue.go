package pipeline

import "github.com/signadot/rmarshal/value"

// Queue is the double ended value queue threaded through a run.
type Queue struct {
	vs []*value.Value
}

func (q *Queue) Len() int {
	return len(q.vs)
}

func (q *Queue) PushBack(vs ...*value.Value) {
	q.vs = append(q.vs, vs...)
}

func (q *Queue) PushFront(v *value.Value) {
	q.vs = append([]*value.Value{v}, q.vs...)
}

// PopFront removes the first value; ok is false when q is empty.
func (q *Queue) PopFront() (v *value.Value, ok bool) {
	if len(q.vs) == 0 {
		return nil, false
	}
	v = q.vs[0]
	q.vs[0] = nil
	q.vs = q.vs[1:]
	return v, true
}

// Drain empties q and returns what it held.
func (q *Queue) Drain() []*value.Value {
	res := q.vs
	q.vs = nil
	return res
}

// Snapshot returns deep copies of the queued values, leaving q unchanged.
func (q *Queue) Snapshot() []*value.Value {
	res := make([]*value.Value, len(q.vs))
	for i, v := range q.vs {
		res[i] = v.Clone()
	}
	return res
}
