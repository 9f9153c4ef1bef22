package domain

type Rank string

const (
	RankLoneNeuron        Rank = "Lone Neuron"
	RankBackpropKid       Rank = "Backprop Kid"
	RankSemiSupervised    Rank = "Semi-Supervised"
	RankUnsupervised      Rank = "Unsupervised"
	RankFullyRecurrent    Rank = "Fully Recurrent"
	RankNeuroevolved      Rank = "Neuroevolved"
	RankHyperoptimised    Rank = "Hyperoptimised"
	RankPerfectlyParallel Rank = "Perfectly Parallel"
)

// rankThresholds is ascending; each entry is the inclusive lower bound of its rank.
var rankThresholds = []struct {
	min  int
	rank Rank
}{
	{0, RankLoneNeuron},
	{100, RankBackpropKid},
	{250, RankSemiSupervised},
	{500, RankUnsupervised},
	{1000, RankFullyRecurrent},
	{1500, RankNeuroevolved},
	{3000, RankHyperoptimised},
	{5000, RankPerfectlyParallel},
}

// RankFor maps a lifetime post count to its rank.
func RankFor(postCount int) Rank {
	rank := rankThresholds[0].rank
	for _, t := range rankThresholds {
		if postCount < t.min {
			break
		}
		rank = t.rank
	}
	return rank
}

// User is a synthetic forum member. Id is the 0-based position in the pool.
type User struct {
	Id        UserId
	Username  Username
	PostCount int
	Rank      Rank
}

func NewUser(id UserId, username Username, postCount int) User {
	return User{Id: id, Username: username, PostCount: postCount, Rank: RankFor(postCount)}
}
