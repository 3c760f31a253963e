/*Package cuckoo implements O(N) "cuckoo" binning for datasets where you
know in advance which bin each element belongs to. Linked Cells uses this
to rebin every particle into its grid cell in a single linear pass: each
element's bin is computed once and the element is handed to Put, which
appends it to that cell.
*/
package cuckoo

// Interface is implemented by the caller of Bin. Bin() assigns each
// element i in [0, Length()) to the bin returned by Bin(i); Put(i, j)
// moves element i into bin j's next free slot.
type Interface interface {
	// Length returns the number of elements to bin.
	Length() int
	// Bin returns the bin index of element i.
	Bin(i int) int
	// Put places element i into bin j at the next free slot in that bin.
	Put(i, j int)
}

// Sort performs a single O(N) pass over every element, calling Put with
// each element's bin index. Unlike a comparison sort, every element is
// touched exactly once, which is what makes this cheap enough to run on
// every Linked Cells structural rebuild.
func Sort(x Interface) {
	n := x.Length()
	for i := 0; i < n; i++ {
		x.Put(i, x.Bin(i))
	}
}
