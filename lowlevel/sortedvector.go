package lowlevel

import (
	"sort"

	"github.com/tsaglam/microsim-go/utils/container"
)

// laneList is one lane's cars, kept in a doubly-linked list ordered by
// distance, adapted from the reference implementation's
// utils/container.List (originally used by entity/lane/lane.go to hold a
// lane's vehicles and pedestrians). Keeping a List per lane instead of one
// flat sorted slice gives car-following neighbor queries, the common case,
// an O(1) node.Next()/node.Prev() instead of a search.
type laneList = container.List[*Car, struct{}]
type laneNode = container.ListNode[*Car, struct{}]

// NaiveStore is the sorted-vector street store, grounded on
// NaiveStreetDataStructure.h: each lane is a position-ordered list, and a
// car's own list node gives O(1) same-lane neighbor lookups; cross-lane
// lookups (needed only for MOBIL's lane-change evaluation) scan the
// target lane's list linearly: from its first node for the car in front,
// from its last node for the car behind.
type NaiveStore struct {
	lanes      []*laneList
	nodeOf     map[int]*laneNode
	length     float64
	speedLimit float64
	red        bool

	staging []*Car
	beyonds []*Car
}

// NewNaiveStore builds an empty store for a street with the given lane
// count, length and speed limit.
func NewNaiveStore(laneCount int, length, speedLimit float64) *NaiveStore {
	s := &NaiveStore{
		lanes:      make([]*laneList, laneCount),
		nodeOf:     make(map[int]*laneNode),
		length:     length,
		speedLimit: speedLimit,
	}
	for i := range s.lanes {
		s.lanes[i] = &laneList{}
	}
	return s
}

func (s *NaiveStore) LaneCount() int      { return len(s.lanes) }
func (s *NaiveStore) Length() float64     { return s.length }
func (s *NaiveStore) SpeedLimit() float64 { return s.speedLimit }

func (s *NaiveStore) CarCount() int {
	n := 0
	for _, l := range s.lanes {
		n += l.Len()
	}
	return n
}

func (s *NaiveStore) InsertCar(c *Car) {
	if c.Lane < 0 || c.Lane >= len(s.lanes) {
		panic("lowlevel: insert into out-of-range lane")
	}
	s.staging = append(s.staging, c)
}

func (s *NaiveStore) IncorporateInsertedCars() {
	if len(s.staging) == 0 {
		return
	}
	byLane := make(map[int][]*laneNode)
	for _, c := range s.staging {
		node := &laneNode{S: c.Distance, Value: c}
		byLane[c.Lane] = append(byLane[c.Lane], node)
		s.nodeOf[c.ID()] = node
	}
	for lane, nodes := range byLane {
		s.lanes[lane].Merge(nodes)
	}
	s.staging = nil
}

// UpdateAndRestoreConsistency commits every car, then rebuilds every
// lane's list from scratch, since a MOBIL lane change moves a car's node
// to a different list than the one it started the tick in.
func (s *NaiveStore) UpdateAndRestoreConsistency() {
	var cars []*Car
	for _, l := range s.lanes {
		for node := l.First(); node != nil; node = node.Next() {
			cars = append(cars, node.Value)
		}
	}
	for _, c := range cars {
		c.Commit()
	}

	for i := range s.lanes {
		s.lanes[i] = &laneList{}
	}
	s.nodeOf = make(map[int]*laneNode, len(cars))
	s.beyonds = s.beyonds[:0]

	byLane := make(map[int][]*laneNode)
	for _, c := range cars {
		if c.Distance >= s.length {
			s.beyonds = append(s.beyonds, c)
			continue
		}
		node := &laneNode{S: c.Distance, Value: c}
		byLane[c.Lane] = append(byLane[c.Lane], node)
		s.nodeOf[c.ID()] = node
	}
	for lane, nodes := range byLane {
		s.lanes[lane].Merge(nodes)
	}
	sort.Slice(s.beyonds, func(i, j int) bool { return less(s.beyonds[i], s.beyonds[j]) })
}

func (s *NaiveStore) BeyondsIterable() []*Car { return s.beyonds }
func (s *NaiveStore) RemoveBeyonds()          { s.beyonds = nil }

func (s *NaiveStore) AllIterable() []*Car {
	var all []*Car
	for _, l := range s.lanes {
		all = append(all, l.Values()...)
	}
	sort.Slice(all, func(i, j int) bool { return less(all[i], all[j]) })
	return all
}

func less(a, b *Car) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.ExternalID() > b.ExternalID()
}

func (s *NaiveStore) GetNextInFront(cur *Car, laneOffset int) *Car {
	lane := cur.Lane + laneOffset
	if lane < 0 || lane >= len(s.lanes) {
		return nil
	}
	if laneOffset == 0 {
		node := s.nodeOf[cur.ID()]
		if node == nil || node.Next() == nil {
			return nil
		}
		return node.Next().Value
	}
	for node := s.lanes[lane].First(); node != nil; node = node.Next() {
		if node.S > cur.Distance {
			return node.Value
		}
	}
	return nil
}

func (s *NaiveStore) GetNextBehind(cur *Car, laneOffset int) *Car {
	lane := cur.Lane + laneOffset
	if lane < 0 || lane >= len(s.lanes) {
		return nil
	}
	if laneOffset == 0 {
		node := s.nodeOf[cur.ID()]
		if node == nil || node.Prev() == nil {
			return nil
		}
		return node.Prev().Value
	}
	for node := s.lanes[lane].Last(); node != nil; node = node.Prev() {
		if node.S < cur.Distance {
			return node.Value
		}
	}
	return nil
}

func (s *NaiveStore) SwitchSignal()      { s.red = !s.red }
func (s *NaiveStore) SetSignal(red bool) { s.red = red }
func (s *NaiveStore) IsSignalRed() bool  { return s.red }
