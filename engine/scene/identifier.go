package scene

import "fmt"

// identifiers hands out small integer IDs, reusing released slots first.
type identifiers struct {
	owners []interface{}
}

func (ids *identifiers) acquire(owner interface{}) uint32 {
	if len(ids.owners) == 0 {
		ids.owners = make([]interface{}, 0, 100)
	}
	length := uint32(len(ids.owners))
	for i := uint32(0); i < length; i++ {
		// Existing free spot. Take it.
		if ids.owners[i] == nil {
			ids.owners[i] = owner
			return i
		}
	}

	// If here, no existing free slots. Need a new id, so push one.
	ids.owners = append(ids.owners, owner)
	return uint32(len(ids.owners)) - 1
}

func (ids *identifiers) release(id uint32) error {
	length := uint32(len(ids.owners))
	if id >= length {
		return fmt.Errorf("release id '%d' out of range (max=%d). Nothing was done", id, length)
	}
	// Just zero out the entry, making it available for use.
	ids.owners[id] = nil
	return nil
}

func (ids *identifiers) lookup(id uint32) interface{} {
	if id >= uint32(len(ids.owners)) {
		return nil
	}
	return ids.owners[id]
}

func (ids *identifiers) count() int {
	n := 0
	for _, o := range ids.owners {
		if o != nil {
			n++
		}
	}
	return n
}
