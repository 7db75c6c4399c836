package model

// Job is a request currently executing. Its outstanding demand is derived
// from the original profile and the number of ticks already elapsed (spec
// §9, "mutable job profile") rather than being shortened in place.
type Job struct {
	RequestID     int64
	DeviceName    string
	origProfile   Profile
	ticksElapsed  int
}

// NewJob promotes a waiting request to a running job at the moment it starts.
func NewJob(requestID int64, deviceName string, profile Profile) Job {
	return Job{
		RequestID:   requestID,
		DeviceName:  deviceName,
		origProfile: profile,
	}
}

// Remaining returns the still-outstanding tail of the job's demand profile.
func (j Job) Remaining() Profile {
	if j.ticksElapsed >= len(j.origProfile) {
		return Profile{}
	}
	return j.origProfile[j.ticksElapsed:]
}

// Advance moves the job forward one tick, consuming its next element. It
// returns true if the job's profile is now fully consumed and the job
// should be removed from the running set.
func (j *Job) Advance() (done bool) {
	j.ticksElapsed++
	return j.ticksElapsed >= len(j.origProfile)
}
