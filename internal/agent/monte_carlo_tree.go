package agent

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
)

var epsilon float64 = math.Nextafter(1., 2.) - 1.

// MonteCarloTreeNode is a node of the UCT search tree. Children form a
// singly linked list through PrevSibling, newest first.
type MonteCarloTreeNode struct {
	Parent, PrevSibling, LastChild *MonteCarloTreeNode

	State  *shobu.State
	Action shobu.Action // Action leading here from Parent.

	NumWin uint64
	NumSim uint64

	unexp []int
}

func NewMonteCarloTree(game *shobu.Game, s *shobu.State,
	rng *rand.Rand) *MonteCarloTreeNode {
	if game == nil {
		panic(errors.New("game is nil"))
	}
	if s == nil {
		panic(errors.New("state is nil"))
	}
	return &MonteCarloTreeNode{State: s, unexp: untried(game, s, rng)}
}

// untried returns the action indices of s in random order, or nil when s
// ends the game.
func untried(game *shobu.Game, s *shobu.State, rng *rand.Rand) []int {
	if game.IsTerminal(s) {
		return nil
	}
	n := s.NumActions()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng.Shuffle(n, func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})
	return idx
}

func (mctn *MonteCarloTreeNode) IsTerminal() bool {
	return mctn == nil || (len(mctn.unexp) == 0 && mctn.LastChild == nil)
}

func (mctn *MonteCarloTreeNode) IsFullyExpanded() bool {
	return mctn == nil || len(mctn.unexp) == 0
}

func (mctn *MonteCarloTreeNode) GetBestNumSimChild(rng *rand.Rand) *MonteCarloTreeNode {
	if mctn == nil || mctn.LastChild == nil {
		return nil
	}
	best := mctn.LastChild
	var n float64 = 1.
	for node := best.PrevSibling; node != nil; node = node.PrevSibling {
		if node.NumSim > best.NumSim {
			n = 1.
			best = node
		} else if node.NumSim == best.NumSim {
			// Pick one of the best NumSim children randomly, with equal probability.
			n++
			if rng.Float64() < 1./n {
				best = node
			}
		}
	}
	return best
}

// Upper Confidence Bound 1 applied to trees.
func (mctn *MonteCarloTreeNode) Uct(c float64) float64 {
	if mctn == nil {
		return 0.
	}
	if mctn.NumSim == 0 || mctn.Parent == nil {
		return math.Inf(1)
	}
	w := float64(mctn.NumWin)
	n := float64(mctn.NumSim)
	nParent := float64(mctn.Parent.NumSim)
	return w/n + c*math.Sqrt(math.Log(nParent)/n)
}

func (mctn *MonteCarloTreeNode) GetBestUctChild(c, cmpThold float64,
	rng *rand.Rand) *MonteCarloTreeNode {
	if mctn == nil || mctn.LastChild == nil {
		return nil
	}
	if cmpThold == 0. {
		cmpThold = epsilon
	}
	var best *MonteCarloTreeNode
	bestUct := -math.MaxFloat64
	var n float64
	for node := mctn.LastChild; node != nil; node = node.PrevSibling {
		uct := node.Uct(c)
		if uct > bestUct+cmpThold {
			n = 1.
			best, bestUct = node, uct
		} else if uct > bestUct-cmpThold {
			// Pick one of the best UCT children randomly, with equal probability.
			n++
			if rng.Float64() < 1./n {
				best, bestUct = node, uct
			}
		}
	}
	return best
}

func (mctn *MonteCarloTreeNode) Expand(game *shobu.Game,
	rng *rand.Rand) *MonteCarloTreeNode {
	if mctn.IsFullyExpanded() {
		return nil
	}
	last := len(mctn.unexp) - 1
	i := mctn.unexp[last]
	s := game.ResultAt(mctn.State, i)
	node := &MonteCarloTreeNode{
		Parent:      mctn,
		PrevSibling: mctn.LastChild,
		State:       s,
		Action:      mctn.State.Action(i),
		unexp:       untried(game, s, rng),
	}
	mctn.LastChild = node
	if last > 0 {
		mctn.unexp = mctn.unexp[:last]
	} else {
		mctn.unexp = nil
	}
	return node
}

// Rollout plays uniformly random actions from the node's state until the
// game ends or plyCap actions have been played. It returns the winner, or
// shobu.NoPlayer for a draw or an unfinished playout.
func (mctn *MonteCarloTreeNode) Rollout(game *shobu.Game, plyCap int,
	rng *rand.Rand) shobu.Player {
	s := mctn.State
	for ply := 0; !game.IsTerminal(s); ply++ {
		if plyCap > 0 && ply >= plyCap {
			return shobu.NoPlayer
		}
		s = game.ResultAt(s, rng.Intn(s.NumActions()))
	}
	return s.Winner()
}

// BackPropagate records one playout ending with winner. A node counts a win
// when the player who moved into it won.
func (mctn *MonteCarloTreeNode) BackPropagate(winner shobu.Player) {
	for node := mctn; node != nil; node = node.Parent {
		if winner != shobu.NoPlayer && winner == node.State.Mover().Opponent() {
			node.NumWin++
		}
		node.NumSim++
	}
}

// TakeOut detaches the node from its parent so that it can become a root.
func (mctn *MonteCarloTreeNode) TakeOut() {
	if mctn == nil || mctn.Parent == nil {
		// Is nil or already as root, just return.
		return
	}
	parent := mctn.Parent
	sibling := mctn.PrevSibling
	mctn.Parent = nil
	mctn.PrevSibling = nil
	child := parent.LastChild
	if child == mctn {
		parent.LastChild = sibling
		return
	}
	for child != nil && child.PrevSibling != mctn {
		child = child.PrevSibling
	}
	if child == nil {
		return
	}
	child.PrevSibling = sibling
}

// Find returns the child whose state matches s.
func (mctn *MonteCarloTreeNode) Find(s *shobu.State) *MonteCarloTreeNode {
	if mctn == nil {
		return nil
	}
	for node := mctn.LastChild; node != nil; node = node.PrevSibling {
		if sameState(node.State, s) {
			return node
		}
	}
	return nil
}

func sameState(a, b *shobu.State) bool {
	return a.Board() == b.Board() && a.Mover() == b.Mover() &&
		a.BoringCount() == b.BoringCount()
}

// Selection and expansion steps of Monte Carlo tree search.
func (mctn *MonteCarloTreeNode) Traverse(game *shobu.Game, c, cmpThold float64,
	rng *rand.Rand) *MonteCarloTreeNode {
	if mctn == nil {
		return nil
	}
	node := mctn
	for node.IsFullyExpanded() && !node.IsTerminal() {
		node = node.GetBestUctChild(c, cmpThold, rng)
	}
	if node.IsTerminal() {
		return node
	}
	return node.Expand(game, rng)
}

// MonteCarloAgent chooses actions with UCT. It keeps its tree between
// calls and reuses the subtree of the position it is asked about.
type MonteCarloAgent struct {
	player   shobu.Player
	game     *shobu.Game
	settings *Settings
	rng      *rand.Rand

	root *MonteCarloTreeNode
}

func NewMonteCarlo(player shobu.Player, game *shobu.Game,
	settings *Settings) *MonteCarloAgent {
	if game == nil {
		panic(errors.New("game is nil"))
	}
	if settings == nil {
		settings = NewSettings()
	}
	return &MonteCarloAgent{
		player:   player,
		game:     game,
		settings: settings,
		rng:      settings.newRand(),
	}
}

func (mca *MonteCarloAgent) Play(ctx context.Context, s *shobu.State,
	remaining time.Duration) (shobu.Action, error) {
	if s.NumActions() == 0 {
		return shobu.Action{}, ErrNoAction
	}
	mca.root = mca.reuse(s)
	limit := budget(mca.settings.MctsTimeLimit, remaining, mca.settings.TimeFraction)
	best, err := mca.MonteCarloTreeSearch(ctx, limit)
	if err != nil {
		return shobu.Action{}, err
	}
	if best == nil {
		return shobu.Action{}, errors.New("cannot find an action to play")
	}
	best.TakeOut()
	mca.root = best
	return best.Action, nil
}

// Root returns the current search tree root.
func (mca *MonteCarloAgent) Root() *MonteCarloTreeNode {
	return mca.root
}

func (mca *MonteCarloAgent) String() string {
	return "mcts(" + mca.player.String() + ")"
}

// reuse returns the subtree for s if s is the current root or one of its
// children (the opponent's reply), else a fresh tree.
func (mca *MonteCarloAgent) reuse(s *shobu.State) *MonteCarloTreeNode {
	if mca.root != nil {
		if sameState(mca.root.State, s) {
			return mca.root
		}
		if node := mca.root.Find(s); node != nil {
			node.TakeOut()
			return node
		}
	}
	return NewMonteCarloTree(mca.game, s, mca.rng)
}

// Simulate performs one iteration of Monte Carlo tree search: selection,
// expansion, RolloutsPerLeaf parallel rollouts and backpropagation.
// Return the elapsed time and occured error.
func (mca *MonteCarloAgent) Simulate(ctx context.Context) (
	elapsedTime time.Duration, err error) {
	startTime := time.Now()
	defer func() {
		elapsedTime = time.Since(startTime)
	}()
	node := mca.root.Traverse(mca.game, mca.settings.UctParamC,
		mca.settings.UctCmpThold, mca.rng)
	if node == nil {
		return
	}
	k := mca.settings.RolloutsPerLeaf
	if k < 1 {
		k = 1
	}
	winners := make([]shobu.Player, k)
	seeds := make([]int64, k)
	for i := range seeds {
		seeds[i] = mca.rng.Int63()
	}
	g, gctx := errgroup.WithContext(ctx)
	if w := mca.settings.RolloutWorkers; w > 0 {
		g.SetLimit(w)
	}
	for i := 0; i < k; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(seeds[i]))
			winners[i] = node.Rollout(mca.game, mca.settings.RolloutPlyCap, rng)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return
	}
	for _, w := range winners {
		node.BackPropagate(w)
	}
	return
}

// MonteCarloTreeSearch simulates until the time limit (or the iteration
// cap) is reached and returns the most visited child of the root.
func (mca *MonteCarloAgent) MonteCarloTreeSearch(ctx context.Context,
	timeLimit time.Duration) (bestChild *MonteCarloTreeNode, err error) {
	root := mca.root
	if root == nil || root.IsTerminal() {
		return nil, nil
	}
	maxIter := mca.settings.MctsMaxIterations
	startTime := time.Now()
	var numSim float64
	var halfAvgElapsedTime float64
	for {
		if numSim > 0 {
			if maxIter > 0 && int(numSim) >= maxIter {
				break
			}
			if timeLimit <= 0 && maxIter <= 0 {
				break
			}
			if timeLimit > 0 &&
				float64(timeLimit-time.Since(startTime)) <= halfAvgElapsedTime {
				break
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		elapsedTime, err := mca.Simulate(ctx)
		if err != nil {
			return nil, err
		}
		numSim++
		halfAvgElapsedTime = (halfAvgElapsedTime*(numSim-1.) +
			float64(elapsedTime)/2.) / numSim
	}
	return root.GetBestNumSimChild(mca.rng), nil
}
