// Package endpoints hands out media node addresses to joining participants.
package endpoints

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/dmitrijs2005/meetingd/internal/logging"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
	"github.com/samber/lo"
)

// Node is a media server. Capacity 0 means unlimited.
type Node struct {
	Host     string
	Port     int
	Region   string
	Capacity int
}

// NodeLoad is a point-in-time view of one node.
type NodeLoad struct {
	Node
	Used int
}

type pairKey struct {
	meetingID string
	userID    string
}

// Allocator is an in-process pool of media nodes. Participants of one meeting
// stick to the same node while it has room; otherwise nodes are tried in
// round-robin order. All methods are safe for concurrent use and never block
// on I/O.
type Allocator struct {
	mu         sync.Mutex
	nodes      []Node
	used       []int
	assigned   map[pairKey]int
	affinity   map[string]int
	perMeeting map[string]int
	next       int
	logger     logging.Logger
}

// NewAllocator builds an allocator over nodes. At least one node is required.
func NewAllocator(nodes []Node, logger logging.Logger) (*Allocator, error) {
	if len(nodes) == 0 {
		return nil, errors.New("no media nodes")
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Allocator{
		nodes:      append([]Node(nil), nodes...),
		used:       make([]int, len(nodes)),
		assigned:   make(map[pairKey]int),
		affinity:   make(map[string]int),
		perMeeting: make(map[string]int),
		logger:     logger.With("module", "endpoint_allocator"),
	}, nil
}

// Assign returns the endpoint for (meetingID, userID), reserving capacity on
// first use. It fails with common.ErrNoCapacity when every node is full.
func (a *Allocator) Assign(meetingID, userID string) (models.Endpoint, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := pairKey{meetingID: meetingID, userID: userID}
	if idx, ok := a.assigned[key]; ok {
		return a.endpoint(idx), nil
	}

	idx, ok := a.pick(meetingID)
	if !ok {
		a.logger.Warn(context.Background(), "no media capacity", "meeting_id", meetingID)
		return models.Endpoint{}, common.ErrNoCapacity
	}

	a.used[idx]++
	a.assigned[key] = idx
	a.perMeeting[meetingID]++
	if _, ok := a.affinity[meetingID]; !ok {
		a.affinity[meetingID] = idx
	}
	return a.endpoint(idx), nil
}

// Release returns the capacity held by (meetingID, userID). Unknown pairs are ignored.
func (a *Allocator) Release(meetingID, userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.release(pairKey{meetingID: meetingID, userID: userID})
}

// ReleaseMeeting drops every assignment of meetingID and reports how many
// were released.
func (a *Allocator) ReleaseMeeting(meetingID string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	keys := lo.Filter(lo.Keys(a.assigned), func(k pairKey, _ int) bool {
		return k.meetingID == meetingID
	})
	for _, k := range keys {
		a.release(k)
	}
	return len(keys)
}

// Load returns a snapshot of per-node usage.
func (a *Allocator) Load() []NodeLoad {
	a.mu.Lock()
	defer a.mu.Unlock()

	return lo.Map(a.nodes, func(n Node, i int) NodeLoad {
		return NodeLoad{Node: n, Used: a.used[i]}
	})
}

func (a *Allocator) release(key pairKey) {
	idx, ok := a.assigned[key]
	if !ok {
		return
	}
	delete(a.assigned, key)
	a.used[idx]--

	a.perMeeting[key.meetingID]--
	if a.perMeeting[key.meetingID] <= 0 {
		delete(a.perMeeting, key.meetingID)
		delete(a.affinity, key.meetingID)
	}
}

func (a *Allocator) hasRoom(idx int) bool {
	c := a.nodes[idx].Capacity
	return c == 0 || a.used[idx] < c
}

func (a *Allocator) pick(meetingID string) (int, bool) {
	if idx, ok := a.affinity[meetingID]; ok && a.hasRoom(idx) {
		return idx, true
	}
	for i := 0; i < len(a.nodes); i++ {
		idx := (a.next + i) % len(a.nodes)
		if a.hasRoom(idx) {
			a.next = (idx + 1) % len(a.nodes)
			return idx, true
		}
	}
	return 0, false
}

func (a *Allocator) endpoint(idx int) models.Endpoint {
	n := a.nodes[idx]
	return models.Endpoint{IP: n.Host, Port: n.Port, Region: n.Region}
}
