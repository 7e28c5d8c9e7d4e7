package fw

import "github.com/named-data/ndnd-pathsel/fw/defn"

// recordingFace is a minimal table.Face that records every Interest/Data
// sent through it, for use across this package's tests.
type recordingFace struct {
	id        defn.FaceId
	interests []*defn.Interest
	data      []*defn.Data
}

func newRecordingFace(id defn.FaceId) *recordingFace {
	return &recordingFace{id: id}
}

func (f *recordingFace) ID() defn.FaceId { return f.id }

func (f *recordingFace) SendInterest(interest *defn.Interest, newNonce bool) {
	f.interests = append(f.interests, interest)
}

func (f *recordingFace) SendData(data *defn.Data) {
	f.data = append(f.data, data)
}
