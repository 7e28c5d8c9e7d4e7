package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/named-data/ndnd-pathsel/fw/core"
	"github.com/named-data/ndnd-pathsel/fw/defn"
	"github.com/named-data/ndnd-pathsel/fw/fw"
	"github.com/named-data/ndnd-pathsel/fw/table"
	"github.com/named-data/ndnd-pathsel/std/types/priority_queue"
)

// consumerFaceId is a reserved identifier for the synthetic downstream
// consumer the simulator plays on behalf of - never a real simulated
// face, so it never collides with a scenario's own face ids.
const consumerFaceId defn.FaceId = ^uint64(0)

// strategyFactories maps a strategy's short name (the key used in
// fw.StrategyVersions and in a scenario's PrefixConfig.Strategy) to a
// constructor, mirroring the registration the real forwarder performs via
// fw's init()-time strategyInit list.
var strategyFactories = map[string]func() fw.Strategy{
	"lowest-cost":        func() fw.Strategy { return &fw.LowestCost{} },
	"madm":               func() fw.Strategy { return &fw.Madm{} },
	"broadcast-newnonce": func() fw.Strategy { return &fw.BroadcastNewNonce{} },
	"multicast":          func() fw.Strategy { return &fw.Multicast{} },
}

// simFace is a Face that never touches real sockets: SendInterest and
// SendData simply exist to satisfy table.Face and StrategyBase's calling
// convention. The simulator observes what was sent by reading the
// PitEntry's out-records back after each AfterReceiveInterest call,
// rather than having simFace report through a side channel.
type simFace struct {
	id      defn.FaceId
	profile FaceProfile
}

func (f *simFace) ID() defn.FaceId { return f.id }

func (f *simFace) SendInterest(interest *defn.Interest, newNonce bool) {}

func (f *simFace) SendData(data *defn.Data) {}

// prefixRuntime is the live state backing one scenario prefix: its bound
// strategy instance and the in-flight PIT entries for Interests sent
// under it.
type prefixRuntime struct {
	cfg      PrefixConfig
	strategy fw.Strategy
	pits     map[string]*table.BasePitEntry
}

// Simulator drives a Scenario's strategies through a single-threaded,
// real-clock discrete-event loop (the strategy layer assumes sequential
// callbacks), using the std/types/priority_queue package to order
// scheduled Interest sends and simulated Data arrivals by wall-clock
// time.
type Simulator struct {
	thread   *fw.Thread
	fib      *table.Fib
	faces    map[defn.FaceId]*simFace
	prefixes map[string]*prefixRuntime
	queue    priority_queue.Queue[func(), int64]
	rng      *rand.Rand
}

// NewSimulator builds the thread, faces, FIB entries, strategy-choice
// bindings, and strategy instances described by scenario.
func NewSimulator(scenario *Scenario) (*Simulator, error) {
	sim := &Simulator{
		thread:   fw.NewThread(),
		fib:      table.NewFib(),
		faces:    make(map[defn.FaceId]*simFace),
		prefixes: make(map[string]*prefixRuntime),
		queue:    priority_queue.New[func(), int64](),
		rng:      rand.New(rand.NewSource(1)),
	}

	for _, fp := range scenario.Faces {
		f := &simFace{id: fp.ID, profile: fp}
		sim.faces[fp.ID] = f
		sim.thread.AddFace(f)
	}

	for _, pc := range scenario.Prefixes {
		factory, ok := strategyFactories[pc.Strategy]
		if !ok {
			return nil, fmt.Errorf("sim: unknown strategy %q for prefix %q", pc.Strategy, pc.Name)
		}
		strategy := factory()
		strategy.Instantiate(sim.thread)

		if scenario.ProbingIntervalMs > 0 {
			interval := time.Duration(scenario.ProbingIntervalMs) * time.Millisecond
			switch st := strategy.(type) {
			case *fw.LowestCost:
				st.SetProbingInterval(interval)
			case *fw.Madm:
				st.SetProbingInterval(interval)
			}
		}

		sim.thread.StrategyChoice.Set(pc.Name, fw.StrategyIDs[pc.Strategy], pc.Params)

		nexthops := make([]*table.FibNextHopEntry, 0, len(pc.NextHops))
		for _, nh := range pc.NextHops {
			nexthops = append(nexthops, &table.FibNextHopEntry{Nexthop: nh.Face, Cost: nh.Cost})
		}
		sim.fib.Insert(pc.Name, nexthops)

		sim.prefixes[pc.Name] = &prefixRuntime{
			cfg:      pc,
			strategy: strategy,
			pits:     make(map[string]*table.BasePitEntry),
		}
	}

	return sim, nil
}

// schedule queues fn to run at (or shortly after) at.
func (sim *Simulator) schedule(at time.Time, fn func()) {
	sim.queue.Push(fn, at.UnixNano())
}

// Run seeds the event queue from scenario's traffic patterns and drains
// it, sleeping between events so strategies see the same real-clock
// behavior (time.Now()-driven estimator windows) they would in
// production.
func (sim *Simulator) Run(scenario *Scenario) error {
	start := time.Now()
	for _, tp := range scenario.Traffic {
		pc, ok := sim.prefixes[tp.Prefix]
		if !ok {
			return fmt.Errorf("sim: traffic references unknown prefix %q", tp.Prefix)
		}
		for i := 0; i < tp.Count; i++ {
			seq := i
			at := start.Add(time.Duration(seq) * tp.interval())
			name := fmt.Sprintf("%s/%d", tp.Prefix, seq)
			size := tp.contentSize()
			sim.schedule(at, func() { sim.sendInterest(pc, name, size) })
		}
	}

	for sim.queue.Len() > 0 {
		next := time.Unix(0, sim.queue.PeekPriority())
		if d := time.Until(next); d > 0 {
			time.Sleep(d)
		}
		fn := sim.queue.Pop()
		fn()
	}
	return nil
}

// sendInterest delivers one synthetic Interest into pc's strategy,
// resolving its FIB entry by longest prefix match on the Interest name,
// then reads back which face(s) it was forwarded to from the PIT
// out-records and schedules a simulated Data arrival (or a simulated
// loss) for each.
func (sim *Simulator) sendInterest(pc *prefixRuntime, name string, contentSize int) {
	fibEntry := sim.fib.FindLongestPrefixMatch(name)
	if fibEntry == nil {
		core.Log.Warn(sim, "no FIB entry for Interest", "name", name)
		return
	}
	strategyID := sim.thread.StrategyChoice.FindEffectiveStrategy(name)

	interest := &defn.Interest{Name: name, Nonce: sim.rng.Uint32()}
	pit := table.NewPitEntry(name, nil)
	pit.InsertInRecord(consumerFaceId, interest.Nonce, 4*time.Second)
	pc.pits[name] = pit

	pc.strategy.AfterReceiveInterest(consumerFaceId, interest, fibEntry, pit)

	for faceId := range pit.OutRecords() {
		face, ok := sim.faces[faceId]
		if !ok {
			continue
		}
		core.Log.Info(sim, "forwarded", "strategy", strategyID, "name", name, "face", faceId)

		if sim.rng.Float64() < face.profile.LossRate {
			core.Log.Debug(sim, "simulated loss", "name", name, "face", faceId)
			continue
		}
		delay := time.Duration(face.profile.DelayMs * float64(time.Millisecond))
		sim.schedule(time.Now().Add(delay), func() {
			sim.deliverData(pc, name, faceId, contentSize)
		})
	}
}

// deliverData feeds a simulated Data packet back through the strategy:
// BeforeSatisfyInterest updates the face's estimators, then
// AfterReceiveData would fan it out to any downstream in-records (just
// the synthetic consumer here, which has no real face to deliver to).
func (sim *Simulator) deliverData(pc *prefixRuntime, name string, faceId defn.FaceId, contentSize int) {
	pit, ok := pc.pits[name]
	if !ok || pit.Rejected() {
		return
	}
	data := &defn.Data{Name: name, ContentSize: contentSize}
	pc.strategy.BeforeSatisfyInterest(pit, faceId, data)
	pc.strategy.AfterReceiveData(data, pit, faceId)
	core.Log.Info(sim, "satisfied", "prefix", pc.cfg.Name, "name", name, "face", faceId)
}

// String identifies the simulator in log output.
func (sim *Simulator) String() string { return "sim" }
