package iodetect

import "testing"

func TestDetectStdio(t *testing.T) {
	src := `#include <cstdio>
int main(){int a,b;scanf("%d %d",&a,&b);printf("%d\n",a+b);}`
	r := Detect("sol.cpp", src, "sum")
	if r.HasFileIO() {
		t.Fatalf("expected no file io, got %+v", r)
	}
	if r.Adaptive {
		t.Fatalf("expected non-adaptive, got %+v", r)
	}
}

func TestDetectFreopen(t *testing.T) {
	src := `#include <cstdio>
int main(){
  freopen("sum.inp", "r", stdin);
  freopen("sum.out", "w", stdout);
  int a,b;scanf("%d %d",&a,&b);printf("%d\n",a+b);
}`
	r := Detect("sol.cpp", src, "sum")
	if !r.HasFileIO() {
		t.Fatalf("expected file io")
	}
	if r.InputFile != "sum.inp" || r.OutputFile != "sum.out" {
		t.Fatalf("unexpected filenames: %+v", r)
	}
}

func TestDetectIfstreamOfstream(t *testing.T) {
	src := `#include <fstream>
using namespace std;
int main(){
  ifstream fin("sum.inp");
  ofstream fout("sum.out");
  int a,b; fin>>a>>b; fout<<a+b<<endl;
}`
	r := Detect("sol.cpp", src, "sum")
	if !r.HasFileIO() {
		t.Fatalf("expected file io")
	}
	if r.InputFile != "sum.inp" || r.OutputFile != "sum.out" {
		t.Fatalf("unexpected filenames: %+v", r)
	}
}

func TestDetectNameMacroAdaptive(t *testing.T) {
	src := `#define NAME "sum"
#include <fstream>
void docfile(){
  if (ifstream(NAME ".inp")) { /* use files */ }
}
int main(){}`
	r := Detect("sol.cpp", src, "sum")
	if !r.Adaptive || !r.ConditionalIO {
		t.Fatalf("expected adaptive+conditional, got %+v", r)
	}
}

func TestDetectNonCLikeIgnored(t *testing.T) {
	r := Detect("sol.py", `open("x.txt")`, "sum")
	if r.HasFileIO() {
		t.Fatalf("python source must not be classified")
	}
}

func TestDetectDefaultsOnlyMissingSide(t *testing.T) {
	src := `#include <fstream>
int main(){
  std::ifstream fin("custom.inp");
  std::ofstream fout;
  fout.open("custom.out");
}`
	r := Detect("sol.cpp", src, "sum")
	if r.InputFile != "custom.inp" {
		t.Fatalf("expected extracted input filename preserved, got %+v", r)
	}
	if r.OutputFile != "custom.out" {
		t.Fatalf("expected extracted output filename attributed via declared var, got %+v", r)
	}
}

func TestDetectDefaultsUnresolvedSideIndependently(t *testing.T) {
	src := `#include <fstream>
int main(){
  std::ifstream fin("custom.inp");
  std::ofstream fout;
}`
	r := Detect("sol.cpp", src, "sum")
	if r.InputFile != "custom.inp" {
		t.Fatalf("expected extracted input filename preserved, got %+v", r)
	}
	if r.OutputFile != "sum.OUT" {
		t.Fatalf("expected output side defaulted independently, got %+v", r)
	}
}

func TestDetectDefaultNamesFallback(t *testing.T) {
	src := `#include <fstream>
int main(){ std::ifstream fin; std::ofstream fout; fin.open("data_in"); fout.open("data_out"); }`
	r := Detect("sol.cpp", src, "")
	if r.InputFile != "data_in" || r.OutputFile != "data_out" {
		t.Fatalf("unexpected filenames: %+v", r)
	}
}
