package vos

import "fmt"

func ExampleNewMapEnvFromEnvList() {
	env := NewMapEnvFromEnvList([]string{"C=D", "A=B", "E", "F=G=H"})

	fmt.Printf("Environ(): %q\n", env.Environ())
	fmt.Printf("Getenv(\"F\"): %q\n", env.Getenv("F"))

	// Output: Environ(): ["A=B" "C=D" "E=" "F=G=H"]
	// Getenv("F"): "G=H"
}

func ExampleMapEnv_LookupEnv() {
	env := NewMapEnvFromEnvList(nil)
	env.Setenv("A", "B")

	val, ok := env.LookupEnv("A")
	fmt.Println("Existing", "val:", val, "ok:", ok)
	val, ok = env.LookupEnv("B")
	fmt.Println("Missing", "val:", val, "ok:", ok)

	// Output: Existing val: B ok: true
	// Missing val:  ok: false
}

func ExampleMapEnv_EnvironWith() {
	env := NewMapEnvFromEnvList([]string{"PWD=/", "HOME=/root"})

	fmt.Println(env.EnvironWith(EnvPWD, "/tmp"))
	fmt.Println(env.Environ())

	// Output: [HOME=/root PWD=/tmp]
	// [HOME=/root PWD=/]
}
