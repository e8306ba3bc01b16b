package gf16

import "testing"

func allElements() []byte {
	out := make([]byte, 16)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

func TestMulCommutative(t *testing.T) {
	for _, a := range allElements() {
		for _, b := range allElements() {
			if Mul(a, b) != Mul(b, a) {
				t.Fatalf("mul(%d,%d) != mul(%d,%d)", a, b, b, a)
			}
		}
	}
}

func TestMulDistributive(t *testing.T) {
	for _, a := range allElements() {
		for _, b := range allElements() {
			for _, c := range allElements() {
				lhs := Mul(a, Add(b, c))
				rhs := Add(Mul(a, b), Mul(a, c))
				if lhs != rhs {
					t.Fatalf("distributivity failed a=%d b=%d c=%d", a, b, c)
				}
			}
		}
	}
}

func TestMulAssociative(t *testing.T) {
	for _, a := range allElements() {
		for _, b := range allElements() {
			for _, c := range allElements() {
				lhs := Mul(Mul(a, b), c)
				rhs := Mul(a, Mul(b, c))
				if lhs != rhs {
					t.Fatalf("associativity failed a=%d b=%d c=%d", a, b, c)
				}
			}
		}
	}
}

func TestInverse(t *testing.T) {
	for _, a := range allElements() {
		if a == 0 {
			continue
		}
		if got := Mul(a, Inv(a)); got != 1 {
			t.Fatalf("mul(%d, inv(%d)) = %d, want 1", a, a, got)
		}
	}
}

func TestMulFx8MatchesScalar(t *testing.T) {
	for _, a := range allElements() {
		var packed uint64
		var want [8]byte
		for i := 0; i < 8; i++ {
			v := byte((i * 3) & 0xf)
			want[i] = Mul(a, v)
			packed |= uint64(v) << (8 * i)
		}
		got := MulFx8(a, packed)
		for i := 0; i < 8; i++ {
			gotByte := byte(got>>(8*i)) & 0xf
			if gotByte != want[i] {
				t.Fatalf("MulFx8(%d) lane %d = %d, want %d", a, i, gotByte, want[i])
			}
		}
	}
}

func TestMulTableMatchesMul(t *testing.T) {
	for _, b := range allElements() {
		tab := MulTable(b)
		want := [4]byte{Mul(b, 1), Mul(b, 2), Mul(b, 4), Mul(b, 8)}
		for i, w := range want {
			got := byte(tab>>(8*i)) & 0xf
			if got != w {
				t.Fatalf("MulTable(%d)[%d] = %d, want %d", b, i, got, w)
			}
		}
	}
}

func TestMatMulIdentity(t *testing.T) {
	n := 4
	id := make([]byte, n*n)
	for i := 0; i < n; i++ {
		id[i*n+i] = 1
	}
	a := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 1}
	out := make([]byte, n*n)
	MatMul(a, id, out, n, n, n)
	for i := range a {
		if out[i] != a[i] {
			t.Fatalf("MatMul by identity changed element %d: got %d want %d", i, out[i], a[i])
		}
	}
}
