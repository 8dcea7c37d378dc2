// Package location resolves the fixed building / room hierarchy a reservation
// can be placed in.
package location

import (
	"fmt"
	"slices"
)

const (
	BuildingHall1 = "Hall 1"
	BuildingHall2 = "Hall 2"

	roomCodeFormat = "Room %02d"
)

type building struct {
	name  string
	rooms int
}

var buildings = []building{
	{name: BuildingHall1, rooms: 10},
	{name: BuildingHall2, rooms: 15},
}

// Buildings returns the selectable building names in display order.
func Buildings() []string {
	names := make([]string, 0, len(buildings))
	for _, b := range buildings {
		names = append(names, b.name)
	}

	return names
}

// IsBuilding reports whether name is a known building.
func IsBuilding(name string) bool {
	return slices.ContainsFunc(buildings, func(b building) bool { return b.name == name })
}

// RoomsFor returns the ordered room codes of a building. Unknown or unset
// buildings have no rooms.
func RoomsFor(name string) []string {
	for _, b := range buildings {
		if b.name != name {
			continue
		}

		rooms := make([]string, 0, b.rooms)
		for i := 1; i <= b.rooms; i++ {
			rooms = append(rooms, fmt.Sprintf(roomCodeFormat, i))
		}

		return rooms
	}

	return []string{}
}

// HasRoom reports whether room belongs to RoomsFor(buildingName).
func HasRoom(buildingName, room string) bool {
	return room != "" && slices.Contains(RoomsFor(buildingName), room)
}
