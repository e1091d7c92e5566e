package log

import (
	"github.com/trickstertwo/xclock"
)

// timeLen is the byte length of the "MMDD HH:MM:SS" stamp that follows the
// level sigil in every record.
const timeLen = 13

// logTime caches the formatted timestamp so the flusher can refresh it once
// per tick instead of reformatting on every record. A 60-entry table maps
// 0..59 to two-character decimal strings; the common one-second advance
// patches two bytes in place.
type logTime struct {
	start int64 // unix seconds of the cached stamp
	min   int
	sec   int
	buf   [timeLen]byte
	cache [60][2]byte
}

func newLogTime() *logTime {
	t := &logTime{}
	for i := 0; i < 60; i++ {
		t.cache[i][0] = byte(i/10) + '0'
		t.cache[i][1] = byte(i%10) + '0'
	}
	t.reset()
	return t
}

// get returns the cached stamp.
func (t *logTime) get() []byte {
	return t.buf[:]
}

// reset reads the clock and formats the stamp from scratch.
func (t *logTime) reset() {
	now := xclock.Now()
	t.start = now.Unix()
	t.min = now.Minute()
	t.sec = now.Second()

	copy(t.buf[0:2], t.cache[int(now.Month())][:])
	copy(t.buf[2:4], t.cache[now.Day()][:])
	t.buf[4] = ' '
	copy(t.buf[5:7], t.cache[now.Hour()][:])
	t.buf[7] = ':'
	copy(t.buf[8:10], t.cache[t.min][:])
	t.buf[10] = ':'
	copy(t.buf[11:13], t.cache[t.sec][:])
}

// update advances the cached stamp. It returns nil when the stamp is
// unchanged, otherwise the refreshed bytes. Advances of up to a minute that
// stay within the hour are patched through the lookup table; a backward
// clock, a larger jump or an advance past minute 59 falls back to a full
// reset.
func (t *logTime) update() []byte {
	now := xclock.Now().Unix()
	if now == t.start {
		return nil
	}

	dt := now - t.start
	if dt < 0 || dt > 60 {
		t.reset()
		return t.buf[:]
	}

	t.sec += int(dt)
	if t.min == 59 && t.sec > 59 {
		t.reset()
		return t.buf[:]
	}

	t.start = now
	if t.sec >= 60 {
		t.min++
		t.sec -= 60
		copy(t.buf[8:10], t.cache[t.min][:])
	}
	copy(t.buf[11:13], t.cache[t.sec][:])
	return t.buf[:]
}
