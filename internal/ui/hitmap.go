package ui

// Rect is a screen rectangle in cells. W and H are exclusive bounds.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a hit-testable area. ID is the element path reported for
// presses inside it.
type Region struct {
	ID   string
	Rect Rect
}

// HitMap resolves pointer coordinates to element paths. Regions added later
// sit on top of earlier ones.
type HitMap struct {
	regions []Region
}

func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region; empty or degenerate regions are ignored.
func (hm *HitMap) AddRect(id string, x, y, w, h int) {
	if id == "" || w <= 0 || h <= 0 {
		return
	}
	hm.regions = append(hm.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h}})
}

// Add registers r under id.
func (hm *HitMap) Add(id string, r Rect) {
	hm.AddRect(id, r.X, r.Y, r.W, r.H)
}

// Test returns the topmost region containing (x, y), or nil.
func (hm *HitMap) Test(x, y int) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].Rect.Contains(x, y) {
			return &hm.regions[i]
		}
	}
	return nil
}

// Target returns the element path under (x, y), or "" for a miss.
func (hm *HitMap) Target(x, y int) string {
	if r := hm.Test(x, y); r != nil {
		return r.ID
	}
	return ""
}

func (hm *HitMap) Regions() []Region {
	return hm.regions
}

func (hm *HitMap) Clear() {
	hm.regions = hm.regions[:0]
}
