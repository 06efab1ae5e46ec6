package audio

import "math"

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation, never a hard clip.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// mixdown saturates a mono mix into a stereo buffer.
func mixdown(mix []float64) []byte {
	buf := makeBuf(len(mix))
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// generateSound renders an effect. variant perturbs noise-based sounds so
// repeated crashes do not sound identical.
func generateSound(kind SoundKind, variant uint64) []byte {
	switch kind {
	case SoundCrash:
		return genCrash(variant)
	case SoundPass:
		return genPass()
	case SoundGameOver:
		return genGameOver()
	case SoundRestart:
		return genRestart()
	case SoundLaneChange:
		return genLaneChange()
	}
	return nil
}

// genCrash: metal crunch. A sub thump, a noisy bandpassed body and a
// ringing panel resonance.
func genCrash(variant uint64) []byte {
	const dur = 0.55
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	seed := variant*0x9E3779B97F4A7C15 + 1
	ring := 380 + float64(variant%5)*45
	lp1, lp2 := 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)

		subFreq := 120 * math.Pow(30.0/120.0, p*2.2)
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*6) * 0.55

		crack := 0.0
		if p < 0.03 {
			crack = lcg(&seed) * (1 - p/0.03) * 0.8
		}

		raw := lcg(&seed)
		lp1 = lp1*0.70 + raw*0.30
		lp2 = lp2*0.97 + raw*0.03
		body := (lp1 - lp2) * math.Exp(-p*5.5) * 0.42

		panel := fm(t, ring, 1.41, 3.0*math.Exp(-p*8)) * math.Exp(-p*9) * 0.18

		putStereoF32(buf, i, softSat((sub+crack+body+panel)*0.9))
	}
	return buf
}

// genPass: short rising two-note chime.
func genPass() []byte {
	freqs := []float64{880, 1318.5} // A5 E6
	noteLen := SampleRate * 55 / 1000
	tail := int(0.12 * SampleRate)
	total := len(freqs)*noteLen + tail
	mix := make([]float64, total)

	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.5, 0.04, 0.4)
			mix[start+j] += fm(t, freq, 2.756, 3.5*env) * env * 0.26
		}
	}
	return mixdown(mix)
}

// genGameOver: slow descending minor chord, staggered.
func genGameOver() []byte {
	const dur = 0.9
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.16}, // C4
		{220.00, 0.32}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.03)
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.3
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1
			mix[i] += s
		}
	}
	return mixdown(mix)
}

// genRestart: ascending bell staircase.
func genRestart() []byte {
	notes := []float64{440, 554.37, 659.25, 880}
	noteStep := int(0.08 * SampleRate)
	total := len(notes)*noteStep + int(0.22*SampleRate)
	mix := make([]float64, total)

	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.003, 0.65, 0.04, 0.28)
			s := fm(t, freq, 3.5, 5.0*env) * env * 0.26
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.06
			mix[start+j] += s
		}
	}
	return mixdown(mix)
}

// genLaneChange: soft tyre swish, filtered noise with a falling tone.
func genLaneChange() []byte {
	n := SampleRate * 110 / 1000
	buf := makeBuf(n)
	seed := uint64(0x1A2E)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.15, 0.35, 0.3, 0.4)
		lp = lp*0.8 + lcg(&seed)*0.2
		tone := math.Sin(2*math.Pi*(520-260*p)*t) * 0.12
		putStereoF32(buf, i, softSat((lp*0.5+tone)*env*0.5))
	}
	return buf
}
