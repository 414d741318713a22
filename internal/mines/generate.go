package mines

import "github.com/sirupsen/logrus"

// generate lays out the mines so that (row, col) stays free, then fills in
// the neighbour counts. It runs exactly once, on the first tap.
func (f *Minefield) generate(row, col int) {
	height, width, mineCount := f.Unpack()
	total := height * width

	/*
	 * Draw mineCount distinct indices from [0, total-1), one slot short
	 * of the field. Every index at or past the excluded cell is shifted
	 * up by one, so the excluded cell is never picked and the rest stay
	 * uniformly likely.
	 */
	candidates := make([]int, total-1)
	for i := range candidates {
		candidates[i] = i
	}
	exclude := row*width + col

	f.field = make([]Cell, total)
	f.mines = make([]int, 0, mineCount)

	k := len(candidates)
	for range mineCount {
		j := f.src.IntN(k)
		i := candidates[j]
		k--
		candidates[j] = candidates[k]
		if i >= exclude {
			i++
		}
		f.mines = append(f.mines, i)
		f.field[i] = MineCell
	}

	for i := range f.field {
		if f.field[i] == MineCell {
			continue
		}
		var n Cell
		f.neighbours(i/width, i%width, func(j int) {
			if f.field[j] == MineCell {
				n++
			}
		})
		f.field[i] = n
	}

	f.phase = Populated

	Log.WithFields(logrus.Fields{
		"params":  f.Params.String(),
		"exclude": exclude,
		"mines":   f.mines,
	}).Debug("generated minefield")
}
