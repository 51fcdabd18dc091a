package engine

import (
	"math/rand"
	"sort"

	"github.com/atlasforge/atlasforge/internal/model"
)

// GeneticConfig holds parameters for the genetic order optimizer.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
}

// OrderGenetic returns an OrderPolicy that searches for a packing order
// with a genetic algorithm instead of using a fixed sort. The heuristic
// of p decides placements during evaluation, so the evolved order is
// tuned to the same packer that will consume it.
func OrderGenetic(p *Packer, surface model.Surface, config GeneticConfig) OrderPolicy {
	return func(rects []model.Rect) []int {
		return optimizeOrder(p, rects, surface, config)
	}
}

// chromosome represents a candidate solution: a packing order.
type chromosome struct {
	order   []int
	fitness float64
}

// geneticOptimizer implements the genetic algorithm over packing orders.
type geneticOptimizer struct {
	packer  *Packer
	rects   []model.Rect
	surface model.Surface
	config  GeneticConfig
	rng     *rand.Rand
}

// optimizeOrder runs the genetic algorithm and returns the best
// permutation of [0, len(rects)).
func optimizeOrder(p *Packer, rects []model.Rect, surface model.Surface, config GeneticConfig) []int {
	if len(rects) == 0 {
		return []int{}
	}

	// Scale effort with problem size
	if len(rects) > 20 {
		config.Generations = 150
	}
	if len(rects) > 50 {
		config.Generations = 200
		config.PopulationSize = 80
	}

	g := &geneticOptimizer{
		packer:  p,
		rects:   rects,
		surface: surface,
		config:  config,
		rng:     rand.New(rand.NewSource(config.Seed)),
	}
	return g.optimize()
}

// optimize runs the evolution loop and returns the best order found.
func (g *geneticOptimizer) optimize() []int {
	population := g.initPopulation()

	for i := range population {
		population[i].fitness = g.evaluate(population[i].order)
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		// Sort by fitness descending (higher is better)
		sort.SliceStable(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged
		eliteCount := g.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, copyChromosome(population[i]))
		}

		// Fill rest of population with offspring
		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)

			child.fitness = g.evaluate(child.order)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
	return population[0].order
}

// initPopulation creates the initial random population, seeded with the
// largest-first order so the GA never does worse than the default sort.
func (g *geneticOptimizer) initPopulation() []chromosome {
	population := make([]chromosome, g.config.PopulationSize)
	for i := range population {
		population[i] = chromosome{order: g.rng.Perm(len(g.rects))}
	}
	if len(population) > 0 {
		population[0] = chromosome{order: OrderLargestFirst(g.rects)}
	}
	return population
}

// evaluate packs the rectangles in the given order, without the
// all-or-nothing contract of Pack, and scores the outcome. The placed
// fraction dominates; a full packing earns a bonus for leaving more of
// the surface height untouched.
func (g *geneticOptimizer) evaluate(order []int) float64 {
	pl := newPool(g.surface)
	placed := 0
	maxBottom := 0

	for _, idx := range order {
		w, h := g.rects[idx].W, g.rects[idx].H
		if w <= 0 || h <= 0 {
			continue
		}
		best := g.packer.selectRegion(pl.regions, w, h)
		if best < 0 {
			continue
		}
		chosen := pl.regions[best]
		pl.place(region{chosen.x, chosen.y, w, h})
		placed++
		if chosen.y+h > maxBottom {
			maxBottom = chosen.y + h
		}
	}

	fitness := float64(placed) / float64(len(order))
	if placed == len(order) && g.surface.H > 0 {
		fitness += 1.0 - float64(maxBottom)/float64(g.surface.H)
	}
	return fitness
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation
// chromosomes. It preserves the relative order of genes from both
// parents.
func (g *geneticOptimizer) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.order)
	if n <= 2 {
		return copyChromosome(parent1)
	}

	// Select two random crossover points
	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{order: make([]int, n)}

	// Copy segment from parent1
	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.order[i] = parent1.order[i]
		inSegment[parent1.order[i]] = true
	}

	// Fill remaining positions with genes from parent2 in order
	childIdx := (point2 + 1) % n
	for _, idx := range parent2.order {
		if !inSegment[idx] {
			child.order[childIdx] = idx
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies random mutations to a chromosome.
func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.order)
	if n < 2 {
		return
	}

	// Swap mutation: swap two random positions
	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.order[i], c.order[j] = c.order[j], c.order[i]
	}

	// Inversion mutation: reverse a small segment (less frequent)
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.order[i], c.order[j] = c.order[j], c.order[i]
			i++
			j--
		}
	}
}

// copyChromosome creates a deep copy of a chromosome.
func copyChromosome(c chromosome) chromosome {
	order := make([]int, len(c.order))
	copy(order, c.order)
	return chromosome{order: order, fitness: c.fitness}
}
