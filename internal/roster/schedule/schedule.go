// Package schedule implements a dense Schedule representation: a
// structure-of-vectors in place of an auto-vivifying three-level dict, so
// cloning during breeding is one pass over a flat slice of cells instead
// of a nested-map walk.
package schedule

import "github.com/hospitalroster/duty-scheduler/internal/roster/model"

// Schedule assigns staff to every (day, shift, room) cell of an instance.
// Cells are addressed by a flat index; Clone never aliases cell slices
// with the schedule it was cloned from.
type Schedule struct {
	Days       int
	ShiftNames []string
	Rooms      []string

	roomIndex map[string]int
	cells     [][]int // len == Days*len(ShiftNames)*len(Rooms)
}

// New builds an empty Schedule covering the full cross product of every
// (day, shift, room) combination in the instance.
func New(inst *model.ProblemInstance) Schedule {
	var rooms []string
	for _, d := range inst.Departments {
		rooms = append(rooms, d.Rooms...)
	}
	shiftNames := make([]string, len(inst.Shifts))
	for i, s := range inst.Shifts {
		shiftNames[i] = s.Name
	}

	roomIndex := make(map[string]int, len(rooms))
	for i, r := range rooms {
		roomIndex[r] = i
	}

	return Schedule{
		Days:       inst.Days,
		ShiftNames: shiftNames,
		Rooms:      rooms,
		roomIndex:  roomIndex,
		cells:      make([][]int, inst.Days*len(shiftNames)*len(rooms)),
	}
}

func (s *Schedule) numShifts() int { return len(s.ShiftNames) }
func (s *Schedule) numRooms() int  { return len(s.Rooms) }

// index computes the flat cell index for (day, shiftIdx, roomIdx).
func (s *Schedule) index(day, shiftIdx, roomIdx int) int {
	return (day*s.numShifts()+shiftIdx)*s.numRooms() + roomIdx
}

// RoomIndex returns the position of a room name in Rooms, or -1.
func (s *Schedule) RoomIndex(room string) int {
	idx, ok := s.roomIndex[room]
	if !ok {
		return -1
	}
	return idx
}

// Cell returns the employee ids assigned at (day, shiftIdx, roomIdx). The
// returned slice must not be mutated by the caller; use SetCell.
func (s *Schedule) Cell(day, shiftIdx, roomIdx int) []int {
	return s.cells[s.index(day, shiftIdx, roomIdx)]
}

// CellByRoom is a convenience wrapper that looks the room index up by name.
func (s *Schedule) CellByRoom(day, shiftIdx int, room string) []int {
	return s.Cell(day, shiftIdx, s.RoomIndex(room))
}

// SetCell replaces the employee ids assigned at a cell. ids is taken by
// reference: callers must not mutate it afterward, or clone it first.
func (s *Schedule) SetCell(day, shiftIdx, roomIdx int, ids []int) {
	s.cells[s.index(day, shiftIdx, roomIdx)] = ids
}

// SetCellByRoom is the room-name counterpart of SetCell.
func (s *Schedule) SetCellByRoom(day, shiftIdx int, room string, ids []int) {
	s.SetCell(day, shiftIdx, s.RoomIndex(room), ids)
}

// Clone copies every cell slice in one pass over the flat cell list: the
// result shares no cell slice with the receiver, so mutating one
// individual never aliases another's cells.
func (s *Schedule) Clone() Schedule {
	out := Schedule{
		Days:       s.Days,
		ShiftNames: append([]string(nil), s.ShiftNames...),
		Rooms:      append([]string(nil), s.Rooms...),
		roomIndex:  s.roomIndex, // immutable map, safe to share
		cells:      make([][]int, len(s.cells)),
	}
	for i, cell := range s.cells {
		if cell == nil {
			continue
		}
		out.cells[i] = append([]int(nil), cell...)
	}
	return out
}

// Cursor identifies one (day, shift, room) cell together with its
// employee ids, for iteration convenience.
type Cursor struct {
	Day       int
	ShiftIdx  int
	ShiftName string
	RoomIdx   int
	Room      string
	IDs       []int
}

// Walk invokes fn once per (day, shift, room) cell, in ascending day/shift/room
// order. fn must not retain the slice passed to it past the call.
func (s *Schedule) Walk(fn func(c Cursor)) {
	ns, nr := s.numShifts(), s.numRooms()
	for day := 0; day < s.Days; day++ {
		for si := 0; si < ns; si++ {
			for ri := 0; ri < nr; ri++ {
				fn(Cursor{
					Day:       day,
					ShiftIdx:  si,
					ShiftName: s.ShiftNames[si],
					RoomIdx:   ri,
					Room:      s.Rooms[ri],
					IDs:       s.cells[s.index(day, si, ri)],
				})
			}
		}
	}
}
